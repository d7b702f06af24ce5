// Package webhook provides a minimal Discord webhook client.
//
// This package executes multipart POST requests against a single
// pre-authorized webhook URL. It is designed as an independent module
// that can be imported without pulling in tensor handling, encoding or
// other unrelated dependencies.
//
// # Usage
//
// Create a Client bound to a webhook URL and execute messages:
//
//	client := webhook.NewClient(url)
//	err := client.Execute(ctx, webhook.Message{
//	    Content: "deploy finished",
//	    Files: []webhook.File{
//	        {Name: "image_0.png", Data: pngBytes},
//	    },
//	})
//
// # Limits
//
// Discord accepts at most MaxFiles attachments per message and at most
// MaxContentLength characters of content. Execute rejects oversized
// file lists before any network traffic and silently truncates long
// content; callers splitting larger posts across several messages own
// that policy themselves.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package webhook
