package dirwatch

import "github.com/imgship/imgship"

// WithDirWatch returns an imgship Option that posts images from a
// watched directory as they appear.
//
// Usage:
//
//	ship, err := imgship.New(cfg,
//	    dirwatch.WithDirWatch(dirwatch.Config{
//	        Dir:     "./renders",
//	        Caption: "hot folder",
//	    }),
//	)
func WithDirWatch(cfg Config) imgship.Option {
	plugin := New(cfg)
	return imgship.WithPlugin(plugin)
}

// WithDefaultDirWatch returns an imgship Option that watches dir with
// default settings (debounce 500ms, common image extensions, no caption).
//
// Usage:
//
//	ship, err := imgship.New(cfg, dirwatch.WithDefaultDirWatch("./renders"))
func WithDefaultDirWatch(dir string) imgship.Option {
	cfg := DefaultConfig()
	cfg.Dir = dir
	return WithDirWatch(cfg)
}
