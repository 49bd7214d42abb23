package validatex

import "github.com/gofiber/fiber/v2"

// Bind parses the request body into out and validates it.
func (v *Validator) Bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return ErrRegistry.NewWithCause(CodeInvalid, err).
			WithDetail("reason", "malformed request body")
	}
	return v.Struct(out)
}
