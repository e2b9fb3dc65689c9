package services

import "errors"

// Failure classes. Handlers match these with errors.Is and map them to the
// HTTP taxonomy; anything else is an upstream store error (500).
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTenantDisabled     = errors.New("subsystem is disabled")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyInitialized = errors.New("master account already initialized")
	ErrAlreadyProcessed   = errors.New("ticket has already been processed")
	ErrDuplicateTicket    = errors.New("ticket number already exists for this subsystem")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateSubdomain = errors.New("subdomain is already taken")
	ErrUnknownGameType    = errors.New("unknown game type")
	ErrLimitExceeded      = errors.New("daily ticket limit exceeded")
	ErrMaxUsersReached    = errors.New("subsystem user limit reached")
	ErrInvalidSubdomain   = errors.New("subdomain must contain only lowercase letters, digits and hyphens")
)
