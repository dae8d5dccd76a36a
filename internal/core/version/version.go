// Package version reports the build stamp of the binaries
package version

// BuildInfo is the build stamp
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build stamp of service
// version, commit and date are set with -ldflags "-X github.com/Vagvedi/gitrekt/internal/core/version.version=v1.0.0"
func Info(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// Version is the bare version string
func Version() string { return version }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
