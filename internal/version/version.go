// Package version provides version information for crm-sync.
package version

// Version is the version of crm-sync. This can be overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. This can be overridden at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// UserAgent returns the User-Agent sent to the CRM backend.
func UserAgent() string {
	return "crm-sync/" + String()
}
