package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables.
// The webhook URL comes from DISCORD_WEBHOOK_URL; everything else uses
// the IMGSHIP_ prefix. It respects flags that have been explicitly set
// (changed map). Returns error if any environment variable has an
// invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("webhook-url", os.Getenv(EnvWebhookURL), &cfg.WebhookURL)
	s.setString("caption", os.Getenv("IMGSHIP_CAPTION"), &cfg.Caption)
	s.setString("spool-dir", os.Getenv("IMGSHIP_SPOOL_DIR"), &cfg.SpoolDir)
	s.setString("state-dir", os.Getenv("IMGSHIP_STATE_DIR"), &cfg.StateDir)
	s.setString("watch", os.Getenv("IMGSHIP_WATCH_DIR"), &cfg.WatchDir)

	if err := s.setDuration("timeout", os.Getenv("IMGSHIP_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("watch-debounce", os.Getenv("IMGSHIP_WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}

	if err := s.setIntFromString("group-size", os.Getenv("IMGSHIP_GROUP_SIZE"), &cfg.GroupSize); err != nil {
		return err
	}
	if err := s.setInt64FromString("max-file-bytes", os.Getenv("IMGSHIP_MAX_FILE_BYTES"), &cfg.MaxFileBytes); err != nil {
		return err
	}

	s.setBoolFromString("dry-run", os.Getenv("IMGSHIP_DRY_RUN"), &cfg.DryRun)
	s.setBoolFromString("verbose", os.Getenv("IMGSHIP_VERBOSE"), &cfg.Verbose)

	return nil
}
