package jobx

import "github.com/riderota/core/pkg/errx"

var ErrRegistry = errx.NewRegistry("JOBX")

var (
	CodeInvalidJob     = ErrRegistry.Register("INVALID_JOB", errx.TypeValidation, 400, "Invalid job definition")
	CodeInvalidPayload = ErrRegistry.Register("INVALID_PAYLOAD", errx.TypeValidation, 400, "Job payload could not be decoded")
	CodeAlreadyRunning = ErrRegistry.Register("ALREADY_RUNNING", errx.TypeConflict, 409, "Worker is already running")
)
