package panel

import "errors"

// ErrUnknownRole indicates a role outside the fixed registry.
var ErrUnknownRole = errors.New("unknown panel role")
