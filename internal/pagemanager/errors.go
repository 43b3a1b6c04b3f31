package pagemanager

import "errors"

var (
	// ErrInvalidConfig marks configuration-time failures: bad or duplicate page
	// records, an unknown sort mode or animation, or an unresolved default page.
	ErrInvalidConfig = errors.New("invalid page manager configuration")

	// ErrRegistryFrozen is returned when registering after the registry was sorted.
	ErrRegistryFrozen = errors.New("page registry is frozen")

	// ErrUnknownPage is returned when a show request names a page that is not
	// registered. It is never fatal: the active page stays unchanged.
	ErrUnknownPage = errors.New("unknown page")
)
