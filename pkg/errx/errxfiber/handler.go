// Package errxfiber renders errx errors as Fiber responses.
package errxfiber

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/logx"
)

// ErrorHandler is the Fiber global error handler. Every failure leaves as
// an errx.HTTPErrorResponse; server-side errors are logged with their cause.
func ErrorHandler(c *fiber.Ctx, err error) error {
	requestID := c.GetRespHeader(fiber.HeaderXRequestID)

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(errx.HTTPErrorResponse{
			Error:     fe.Message,
			Code:      "HTTP_ERROR",
			Type:      string(typeForStatus(fe.Code)),
			Status:    fe.Code,
			RequestID: requestID,
		})
	}

	status, body := errx.Response(err, requestID)

	entry := logx.WithContext(c.UserContext()).WithFields(logx.Fields{
		"path":   c.OriginalURL(),
		"method": c.Method(),
		"status": status,
		"code":   body.Code,
	}).WithError(err)
	if status >= fiber.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	return c.Status(status).JSON(body)
}

func typeForStatus(status int) errx.Type {
	switch status {
	case fiber.StatusNotFound:
		return errx.TypeNotFound
	case fiber.StatusUnauthorized:
		return errx.TypeAuthorization
	case fiber.StatusForbidden:
		return errx.TypeForbidden
	}
	if status < fiber.StatusInternalServerError {
		return errx.TypeValidation
	}
	return errx.TypeInternal
}
