package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagPalette   = flag.String("palette", "", "Palette image to open at startup")
	flagRefs      = flag.String("refs", "", "Reference file (.pxref) to open at startup")
	flagScale     = flag.Int("scale", 0, "Export upscale factor")
	flagNoSession = flag.Bool("no-session", false, "Do not restore or save the editor session")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPalette != "" {
		cfg.OpenPalette = *flagPalette
	}
	if *flagRefs != "" {
		cfg.OpenRefs = *flagRefs
	}
	if *flagScale > 0 {
		cfg.Export.Scale = *flagScale
	}
	if *flagNoSession {
		cfg.Session.Enabled = false
	}
}
