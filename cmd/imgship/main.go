package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/imgship/imgship"
	logAdapter "github.com/imgship/imgship/internal/adapters/log"
	"github.com/imgship/imgship/internal/cliconfig"
	"github.com/imgship/imgship/plugins/dirwatch"
	"github.com/imgship/imgship/plugins/spoolclean"
)

const helpBanner = `
 ___  __  __   ____  ____   _   _  ___  ____
|_ _||  \/  | / ___|/ ___| | | | ||_ _||  _ \
 | | | |\/| || |  _ \___ \ | |_| | | | | |_) |
 | | | |  | || |_| | ___) ||  _  | | | |  __/
|___||_|  |_| \____||____/ |_| |_||___||_|
`

const helpDescription = `
Ship rendered images to a Discord channel through a webhook.

Highlights:
  - Splits big batches into webhook-sized groups of four automatically.
  - Keeps attachments under Discord's upload cap by re-encoding oversized frames.
  - Posts a built-in test card when run with no input, so wiring is easy to verify.
  - Configure via file, env, or flags; watch mode ships new files as they land.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  imgship --caption "nightly render" out/frame_001.png out/frame_002.png
  imgship --watch ./renders --caption "hot folder"
  imgship --dry-run
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var envPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "imgship [files...]",
		Short:   "Ship rendered images to a Discord channel through a webhook",
		Long:    longHelp,
		Example: exampleUsage,
		Args:    cobra.ArbitraryArgs,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load dotenv first so the env pass below sees its variables.
			if err := cliconfig.LoadDotenv(envPath); err != nil {
				return fmt.Errorf("load dotenv: %w", err)
			}

			// Load config file (default $HOME/.imgship/config.toml), then apply overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (DISCORD_WEBHOOK_URL, IMGSHIP_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Validate and set derived defaults
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Verbose {
				log = log.Level(zerolog.DebugLevel)
			}

			// Log configuration (masking the webhook token)
			logCfg := cfg
			logCfg.WebhookURL = maskWebhookURL(logCfg.WebhookURL)
			log.Info().Interface("config", logCfg).Msg("configuration")

			libCfg := imgship.Config{
				WebhookURL:   cfg.WebhookURL,
				HTTPTimeout:  cfg.HTTPTimeout,
				GroupSize:    cfg.GroupSize,
				MaxFileBytes: cfg.MaxFileBytes,
				SpoolDir:     cfg.SpoolDir,
				StateDir:     cfg.StateDir,
				DryRun:       cfg.DryRun,
			}

			opts := []imgship.Option{
				imgship.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
			}

			if cfg.WatchDir == "" {
				return runOnce(libCfg, opts, args, cfg.Caption)
			}

			opts = append(opts,
				dirwatch.WithDirWatch(dirwatch.Config{
					Dir:      cfg.WatchDir,
					Debounce: cfg.WatchDebounce,
					Caption:  cfg.Caption,
				}),
				spoolclean.WithSpoolClean(spoolclean.DefaultConfig()),
			)
			return runWatch(libCfg, opts, log)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.imgship/config.toml)")
	root.Flags().StringVar(&envPath, "env-file", "", "path to dotenv file (default: ./.env if present)")
	root.Flags().StringVar(&cfg.WebhookURL, "webhook-url", cfg.WebhookURL, "Discord webhook URL (or set "+cliconfig.EnvWebhookURL+")")
	root.Flags().StringVar(&cfg.Caption, "caption", cfg.Caption, "message text posted with the images")

	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout per webhook execution")
	root.Flags().IntVar(&cfg.GroupSize, "group-size", cfg.GroupSize, "attachments per message (max 4)")
	root.Flags().Int64Var(&cfg.MaxFileBytes, "max-file-bytes", cfg.MaxFileBytes, "attachment size ceiling in bytes")

	root.Flags().StringVar(&cfg.SpoolDir, "spool-dir", cfg.SpoolDir, "parent directory for encoding scratch space (defaults to system temp)")
	if err := root.Flags().MarkHidden("spool-dir"); err != nil {
		log.Info().Err(err).Msg("failed to hide spool-dir flag")
	}
	root.Flags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "state directory for the watch journal (defaults to watch dir)")
	if err := root.Flags().MarkHidden("state-dir"); err != nil {
		log.Info().Err(err).Msg("failed to hide state-dir flag")
	}

	root.Flags().StringVar(&cfg.WatchDir, "watch", cfg.WatchDir, "watch a directory and post new images as they appear")
	root.Flags().DurationVar(&cfg.WatchDebounce, "watch-debounce", cfg.WatchDebounce, "quiet period before a watched file is posted")
	root.Flags().BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "encode and group but skip delivery")
	root.Flags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("imgship")
		os.Exit(1)
	}
}

// runOnce posts the given files, or the built-in test card when none are
// given, and exits.
func runOnce(cfg imgship.Config, opts []imgship.Option, paths []string, caption string) error {
	ship, err := imgship.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("create imgship: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if len(paths) == 0 {
		return ship.Post(ctx, nil, caption)
	}
	return ship.PostFiles(ctx, paths, caption)
}

// runWatch starts the watch plugins and runs until a signal arrives.
func runWatch(cfg imgship.Config, opts []imgship.Option, log zerolog.Logger) error {
	ship, err := imgship.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("create imgship: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := ship.Start(ctx); err != nil {
		return fmt.Errorf("start imgship: %w", err)
	}

	<-sigCh
	log.Info().Msg("received signal, stopping...")

	if err := ship.Stop(); err != nil {
		return fmt.Errorf("stop imgship: %w", err)
	}
	return nil
}

// maskWebhookURL hides the webhook token, the last path segment.
func maskWebhookURL(u string) string {
	i := strings.LastIndex(u, "/")
	if i < 0 || i == len(u)-1 {
		return u
	}
	return u[:i+1] + "*****"
}
