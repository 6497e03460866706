package nav

import "errors"

// Configuration errors; New returns these wrapped with the offending path or name.
var (
	ErrDanglingRedirect   = errors.New("dangling redirect")
	ErrDuplicateRouteName = errors.New("duplicate route name")
	ErrDuplicateRoutePath = errors.New("duplicate route path")
	ErrInvalidRoute       = errors.New("invalid route")
	ErrRedirectCycle      = errors.New("redirect cycle")
)

// Runtime errors; callers recover by rendering a fallback or ignoring the navigation.
var (
	ErrLazyModuleLoad   = errors.New("could not load view module")
	ErrNotFound         = errors.New("route not found")
	ErrUnknownRouteName = errors.New("unknown route name")
)
