package cmd

// version is set at build time using -ldflags "-X github.com/mozilla-ai/mcpdir/internal/cmd.version=...".
var version = "dev"

// AppName returns the name of the application.
func AppName() string {
	return "mcpdir"
}

// Version returns the application version.
func Version() string {
	return version
}
