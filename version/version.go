package version

// Ver holds the version derived from the latest git tag
// Populated using:
//
//	go build -ldflags "-X github.com/psat-tools/psat-server/version.Ver=`git describe --tags | sed 's/^v//`'"
//
// Populated automatically at build / releases in the Docker image
var Ver string

// VerDev indicates the version of a development build.
const VerDev = "dev"

// Rev holds binary revision string
// Populated using:
//
//	go build -ldflags "-X github.com/psat-tools/psat-server/version.Rev=`git rev-parse HEAD`"
//
// Populated automatically at build / releases in the Docker image
var Rev string
