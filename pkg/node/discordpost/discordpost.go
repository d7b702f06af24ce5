// Package discordpost registers the DiscordPostViaWebhook node: a
// pipeline step that posts its input images to a Discord webhook and
// passes the images through unchanged.
//
// Enable it with a blank import:
//
//	import _ "github.com/imgship/imgship/pkg/node/discordpost"
package discordpost

import (
	"context"

	"github.com/imgship/imgship"
	"github.com/imgship/imgship/pkg/node"
	"github.com/imgship/imgship/pkg/tensor"
)

const (
	// Name is the registry identifier of this node type.
	Name = "DiscordPostViaWebhook"

	// DisplayName is the human-readable label shown by host UIs.
	DisplayName = "Use Discord Webhook"
)

func init() {
	node.Register(Name, DisplayName, func() (node.Node, error) {
		return &Node{}, nil
	})
}

// Node posts images to the Discord webhook named by the
// DISCORD_WEBHOOK_URL environment variable.
type Node struct {
	// Options are applied to the Imgship instance built for each call.
	Options []imgship.Option
}

// Execute posts the images to the webhook under the caption and returns
// them unchanged. Configuration is read from the environment on every
// call, so a missing webhook URL fails before any image work. A nil
// tensor posts the built-in test card.
func (n *Node) Execute(ctx context.Context, images tensor.Array, caption string) (tensor.Array, error) {
	cfg, err := imgship.ConfigFromEnv()
	if err != nil {
		return images, err
	}

	ship, err := imgship.New(cfg, n.Options...)
	if err != nil {
		return images, err
	}

	if err := ship.Post(ctx, images, caption); err != nil {
		return images, err
	}
	return images, nil
}
