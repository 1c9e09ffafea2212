package dicterr

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithOffset(off int64) Option   { return func(e *Error) { e.Offset = off } }
func WithCause(err error) Option    { return func(e *Error) { e.Err = err } }
