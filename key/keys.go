// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalogue Source - these keys locate the remote site and bound listing traversal.
const (
	CatalogueOrigin    = "catalogue.origin"
	CatalogueAPIOrigin = "catalogue.api_origin"
	CatalogueMaxPages  = "catalogue.max_pages"
)

// Cache - these keys govern the persisted response cache.
const (
	CacheEnabled = "cache.enabled"
)

// Network - these keys tune the HTTP fetcher.
const (
	NetworkTimeout        = "network.timeout"
	NetworkRetries        = "network.retries"
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite     = "logs.write"
	LogsLevel     = "logs.level"
	LogsJson      = "logs.json"
	LogsMaxSizeMB = "logs.max_size_mb"
)

// CLI Execution Environment - these settings govern terminal output.
const (
	CliColored   = "cli.colored"
	IconsVariant = "icons.variant"
)
