package runtime

import "errors"

var (
	ErrNoComputeMetadata      = errors.New("no compute metadata")
	ErrUnknownComputeFunction = errors.New("unknown compute function")
	ErrUnknownExpandFunction  = errors.New("unknown expand function")
	ErrNoExpansionTemplate    = errors.New("no expansion template")
	ErrUnknownAttribute       = errors.New("unknown attribute")
	ErrUnknownMethod          = errors.New("unknown method")
	ErrMalformedTemplate      = errors.New("malformed expansion template")
	ErrInvalidExpression      = errors.New("invalid expression")
)
