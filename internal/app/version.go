package app

// Set through -ldflags at build time.
var (
	Version   = "dev"
	GitTag    = ""
	BuildTime = ""
)
