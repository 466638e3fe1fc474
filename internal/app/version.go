package app

// Version is the client version, overridden at build time:
//
//	go build -ldflags "-X github.com/modular-tools/cli/internal/app.Version=v1.2.0"
var Version = "dev"
