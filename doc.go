// Package imgship delivers images to Discord webhooks.
//
// Imgship normalizes float tensor batches or pre-decoded images into
// PNG attachments, guards each file against Discord's upload limit, and
// delivers the attachments in groups of at most four per message. It
// can be used as a standalone CLI application or embedded as a library
// in other Go programs.
//
// # Basic Usage
//
// To embed imgship in your application:
//
//	cfg := imgship.Config{
//	    WebhookURL: "https://discord.com/api/webhooks/id/token",
//	}
//
//	ship, err := imgship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := ship.Post(ctx, images, "render finished"); err != nil {
//	    log.Printf("delivery failed: %v", err)
//	}
//
// Posting a nil tensor sends the built-in test card, which is useful
// for verifying webhook configuration end to end.
//
// # Configuration
//
// Create a [Config] with at minimum WebhookURL, or use [DefaultConfig]
// to pick the URL up from the DISCORD_WEBHOOK_URL environment variable.
// All other fields have defaults set via [Config.SetDefaults].
//
// # Event Handling
//
// To observe deliveries, implement [EventHandler] and pass it via
// [WithEventHandler]:
//
//	handler := &myEventHandler{}
//	ship, err := imgship.New(cfg, imgship.WithEventHandler(handler))
//
// Events are called synchronously from the posting goroutine.
// Implementations should return quickly to avoid blocking delivery.
//
// # Dependency Injection
//
// For testing, you can inject custom implementations of external
// dependencies:
//
//	ship, err := imgship.New(cfg,
//	    imgship.WithHTTPClient(mockClient),
//	    imgship.WithLogger(customLogger),
//	)
//
// # Lifecycle States
//
// An Imgship instance can be in one of five states: [StateStopped],
// [StateStarting], [StateRunning], [StateStopping], or [StateCrashed].
// Use [Imgship.Status] to query the current state. Posting works from
// any state; Start and Stop exist to manage plugins.
//
// # Plugins
//
// Imgship supports optional plugins for service-style operation:
//
//	import "github.com/imgship/imgship/plugins/dirwatch"
//	import "github.com/imgship/imgship/plugins/spoolclean"
//
//	ship, err := imgship.New(cfg,
//	    dirwatch.WithDefaultDirWatch("/data/renders"),
//	    spoolclean.WithDefaultSpoolClean(),
//	)
//
// Plugins are initialized on Start() and shut down on Stop().
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// Use [ModuleVersions] to get versions of all sub-modules and
// [CompatibilityMatrix] to check minimum compatible versions.
package imgship
