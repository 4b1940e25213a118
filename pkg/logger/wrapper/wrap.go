package wrap

import (
	"context"
	"errors"
)

// Error wraps err with the LogCtx currently stored in ctx.
// An already wrapped error only gets its LogCtx refreshed.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var e *errorWithLogCtx
	if errors.As(err, &e) {
		if x, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
			e.logCtx = x
		}
		return err
	}

	return &errorWithLogCtx{
		err:    err,
		logCtx: FromContext(ctx),
	}
}
