package constants

import "time"

const (
	// DefaultBranch is the branch used when the caller and the
	// environment are both silent about it.
	DefaultBranch = "main"

	// DefaultTimeout bounds every request made through the default
	// HTTP client.
	DefaultTimeout = 10 * time.Second

	// DefaultPageSize is the page size used by cursor pagination when
	// the caller does not override it.
	DefaultPageSize = 20

	// MaxOperationsPerTransaction is the upper bound the remote API
	// enforces on a single transaction request. The batching helpers
	// split on this boundary.
	MaxOperationsPerTransaction = 1000

	// DefaultContentType is used for file uploads when the caller does
	// not name one.
	DefaultContentType = "application/octet-stream"

	// DefaultConnectionName is the registry name used by hosts that
	// only ever hold one connection.
	DefaultConnectionName = "xata"
)

// Environment variables consulted when credentials are not supplied
// explicitly.
const (
	EnvAPIKey      = "XATA_API_KEY"
	EnvDBURL       = "XATA_DB_URL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvBranch      = "XATA_BRANCH"
)
