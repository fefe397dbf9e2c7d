package splitledger

import "fmt"

// Maj is the major version number (updated on breaking release)
const Maj = 0

// Min is the minor version number (updated on minor releases)
const Min = 1

// Fix is the patch number (updated on bugfix releases)
const Fix = 0

// Suffix used when not a tagged release (eg. -dev, -alpha, -beta, etc)
const Suffix = "-dev"

// version is private to avoid modifications
var version = fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)

// GitCommit set by build flags
//   go build -ldflags "-X github.com/remitwise/splitledger.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

// Version is the string to be displayed
func Version() string {
	if GitCommit == "" {
		return version
	}
	return version + " " + GitCommit
}
