package jobxredis

import "github.com/riderota/core/pkg/errx"

var ErrRegistry = errx.NewRegistry("JOBX_REDIS")

var (
	CodeWrite    = ErrRegistry.Register("WRITE", errx.TypeExternal, 502, "Redis write failed")
	CodeRead     = ErrRegistry.Register("READ", errx.TypeExternal, 502, "Redis read failed")
	CodeNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, 404, "Job not found")
	CodeCodec    = ErrRegistry.Register("CODEC", errx.TypeInternal, 500, "Job record could not be encoded")
)
