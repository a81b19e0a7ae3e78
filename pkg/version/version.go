package version

// Current defines the application version.
// It defaults to "dev" but is overwritten by the Makefile using -ldflags.
var Current = "dev"

// AppName identifies the tool in user agents and telemetry.
const AppName = "radiobridge"
