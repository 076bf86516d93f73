// Package constants provides shared constants used throughout bit.
package constants

import "time"

// Application identity.
const (
	// AppName is the binary name.
	AppName = "bit"

	// AppDirName is the application directory created in the user's home.
	AppDirName = ".binance-icons-toolkit"

	// SettingsFile is the operator settings file inside the application directory.
	SettingsFile = "bit.json"
)

// Icons repository.
const (
	// RepositoryURL is the published icons repository.
	RepositoryURL = "https://github.com/VadimMalykhin/binance-icons.git"

	// MainBranch holds the published manifest and icons.
	MainBranch = "main"

	// DevBranch holds the icon sources and markdown templates.
	DevBranch = "dev"

	// CloneDepth is the history depth used for clones.
	CloneDepth = 1

	// IconsBaseURL is the raw content root embedded into markdown tables.
	IconsBaseURL = "https://raw.githubusercontent.com/VadimMalykhin/binance-icons/main"

	// PackageName is the name written into the generated package.json.
	PackageName = "binance-icons"
)

// Exchange.
const (
	// ExchangeURL is the exchange REST root.
	ExchangeURL = "https://api.binance.com"

	// RecvWindow is the signed request validity window in milliseconds.
	RecvWindow = 60000

	// ExchangeCacheTTL is how long fetched exchange responses are reused.
	ExchangeCacheTTL = 5 * time.Minute

	// ExchangeCacheCleanup is how often expired responses are dropped.
	ExchangeCacheCleanup = 10 * time.Minute
)

// Timeouts.
const (
	// DefaultHTTPTimeout is the timeout for exchange requests.
	DefaultHTTPTimeout = 30 * time.Second

	// CloneTimeout bounds a single branch clone.
	CloneTimeout = 5 * time.Minute

	// OptimizeTimeout bounds a single svgo invocation.
	OptimizeTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period after an interrupted run.
	ShutdownTimeout = 5 * time.Second
)

// File permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x).
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--).
	FilePermissions = 0644

	// SecureFilePermissions is for the settings file (rw-------).
	SecureFilePermissions = 0600
)

// Limits.
const (
	// DefaultWorkers caps concurrent icon checks and optimizations.
	DefaultWorkers = 8

	// MaxWorkers is the upper bound accepted from configuration.
	MaxWorkers = 64
)
