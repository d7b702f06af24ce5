package imgship_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/imgship/imgship"
)

// ExampleNew demonstrates how to embed imgship in your application.
func ExampleNew() {
	cfg := imgship.Config{
		WebhookURL: "https://discord.com/api/webhooks/id/token",
	}

	ship, err := imgship.New(cfg)
	if err != nil {
		fmt.Printf("failed to create imgship: %v\n", err)
		return
	}

	// Start brings up registered plugins; posting itself does not
	// require it.
	if err := ship.Start(context.Background()); err != nil {
		fmt.Printf("failed to start: %v\n", err)
		return
	}
	fmt.Printf("running: %v\n", ship.Status().IsRunning())

	_ = ship.Stop()
	fmt.Printf("state after stop: %s\n", ship.Status())

	// Output:
	// running: true
	// state after stop: Stopped
}

// Example_dryRun demonstrates exercising the full pipeline without a
// network call. A nil tensor posts the built-in test card.
func Example_dryRun() {
	ship, err := imgship.New(imgship.Config{DryRun: true})
	if err != nil {
		fmt.Printf("failed to create imgship: %v\n", err)
		return
	}

	if err := ship.Post(context.Background(), nil, "configuration check"); err != nil {
		fmt.Printf("post failed: %v\n", err)
		return
	}
	fmt.Println("dry run complete")

	// Output: dry run complete
}

// Example_withEventHandler demonstrates how to observe deliveries.
func Example_withEventHandler() {
	handler := &progressHandler{}

	cfg := imgship.Config{
		WebhookURL: "https://discord.com/api/webhooks/id/token",
	}

	ship, err := imgship.New(cfg, imgship.WithEventHandler(handler))
	if err != nil {
		fmt.Printf("failed to create imgship: %v\n", err)
		return
	}

	_ = ship // Post through ship to receive events...
}

// progressHandler implements imgship.EventHandler for delivery progress.
type progressHandler struct {
	imgship.BaseEventHandler // Embed for no-op defaults
}

func (h *progressHandler) OnGroupSent(event imgship.GroupSentEvent) {
	fmt.Printf("delivered group %d/%d (%d files, %d bytes) in %v\n",
		event.Group, event.Groups, event.Files, event.Bytes, event.Duration)
}

func (h *progressHandler) OnGroupError(event imgship.GroupErrorEvent) {
	fmt.Printf("group %d/%d failed: %v\n", event.Group, event.Groups, event.Err)
}

// Example_withMockHTTPClient demonstrates dependency injection for testing.
func Example_withMockHTTPClient() {
	mockClient := &mockHTTPClient{}

	cfg := imgship.Config{
		WebhookURL: "https://discord.com/api/webhooks/id/token",
	}

	ship, err := imgship.New(cfg, imgship.WithHTTPClient(mockClient))
	if err != nil {
		fmt.Printf("failed to create imgship: %v\n", err)
		return
	}

	_ = ship // Use in tests...
}

// mockHTTPClient implements imgship.HTTPClient for testing.
type mockHTTPClient struct {
	requests []*http.Request
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	return &http.Response{
		StatusCode: http.StatusNoContent,
		Body:       http.NoBody,
	}, nil
}

// Example_withCustomLogger demonstrates injecting a custom logger.
func Example_withCustomLogger() {
	logger := &printLogger{}

	cfg := imgship.Config{
		WebhookURL: "https://discord.com/api/webhooks/id/token",
	}

	ship, err := imgship.New(cfg, imgship.WithLogger(logger))
	if err != nil {
		fmt.Printf("failed to create imgship: %v\n", err)
		return
	}

	_ = ship // Use imgship instance...
}

// printLogger implements imgship.Logger.
type printLogger struct{}

func (l *printLogger) Debug(msg string, fields ...imgship.LogField) {
	fmt.Printf("[DEBUG] %s\n", msg)
}

func (l *printLogger) Info(msg string, fields ...imgship.LogField) {
	fmt.Printf("[INFO] %s\n", msg)
}

func (l *printLogger) Warn(msg string, fields ...imgship.LogField) {
	fmt.Printf("[WARN] %s\n", msg)
}

func (l *printLogger) Error(msg string, fields ...imgship.LogField) {
	fmt.Printf("[ERROR] %s\n", msg)
}

// Example_moduleVersions demonstrates version checking.
func Example_moduleVersions() {
	fmt.Printf("Imgship version: %s\n", imgship.Version)

	versions := imgship.ModuleVersions()
	for module, version := range versions {
		fmt.Printf("%s: %s\n", module, version)
	}
}

// ExampleImgship_Status demonstrates controlling the imgship lifecycle.
func ExampleImgship_Status() {
	cfg := imgship.Config{
		WebhookURL: "https://discord.com/api/webhooks/id/token",
	}

	ship, _ := imgship.New(cfg)
	fmt.Printf("initial: %s\n", ship.Status())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = ship.Start(ctx)
	fmt.Printf("after start: %s\n", ship.Status())

	_ = ship.Stop()
	fmt.Printf("after stop: %s\n", ship.Status())

	// Output:
	// initial: Stopped
	// after start: Running
	// after stop: Stopped
}
