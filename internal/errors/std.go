package errors

import stderrors "errors"

// Standard library helpers re-exported so callers only import this package
var (
	Is     = stderrors.Is
	As     = stderrors.As
	Unwrap = stderrors.Unwrap
	Join   = stderrors.Join
)
