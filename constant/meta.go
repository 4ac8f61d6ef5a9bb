// Package constant defines immutable application-level identifiers and catalogue defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "nrkcat"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every request to the catalogue site.
	UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
