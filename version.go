package deepltool

// Static application information.
const (
	// Name is the application name.
	Name = "deepltool"

	// Description is a short description of the application.
	Description = "DeepL translator tool for the Dify workflow platform"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/deepltool"

	// License is the software license.
	License = "MIT"
)

// Build information, settable with -ldflags -X:
//
//	go build -ldflags "-X github.com/ZaguanLabs/deepltool.Version=1.0.0 -X github.com/ZaguanLabs/deepltool.GitCommit=$(git rev-parse HEAD)"
var (
	// Version is the semantic version of the application.
	Version = "0.1.0"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// GitBranch is the git branch name.
	GitBranch = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"

	// GoVersion is the Go version used to build.
	GoVersion = "unknown"
)

// FullVersion returns the version string with optional build info.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns a user agent string for HTTP requests.
func UserAgent() string {
	return Name + "/" + Version
}
