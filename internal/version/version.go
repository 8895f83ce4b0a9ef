package version

// Version is overridden at build time with
// -ldflags "-X github.com/notwillk/databundle/internal/version.Version=...".
var Version = "dev"
