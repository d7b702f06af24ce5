package spoolclean

import "github.com/imgship/imgship"

// WithSpoolClean returns an imgship Option that enables automatic spool
// cleanup. When enabled, the plugin periodically scans the spool parent
// directory and removes staging directories older than the configured age.
//
// Usage:
//
//	ship, err := imgship.New(cfg,
//	    spoolclean.WithSpoolClean(spoolclean.Config{
//	        CheckInterval: time.Hour,
//	        MaxAge:        24 * time.Hour,
//	    }),
//	)
func WithSpoolClean(cfg Config) imgship.Option {
	plugin := New(cfg)
	return imgship.WithPlugin(plugin)
}

// WithDefaultSpoolClean returns an imgship Option that enables spool
// cleanup with default settings (scan hourly, remove spools older than 24h).
//
// Usage:
//
//	ship, err := imgship.New(cfg, spoolclean.WithDefaultSpoolClean())
func WithDefaultSpoolClean() imgship.Option {
	return WithSpoolClean(DefaultConfig())
}
