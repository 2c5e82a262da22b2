package version

// Version is the current dishform release.
// Bump it on every release.
const Version = "0.3.0"

// FullVersion returns the version with the v prefix
func FullVersion() string {
	return "v" + Version
}

// UserAgent is sent with every request to the dishes service.
func UserAgent() string {
	return "dishform/" + Version
}
