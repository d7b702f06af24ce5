// Package discord adapts the public webhook client to the
// application's MessageSender port.
package discord

import (
	"context"

	"github.com/imgship/imgship/internal/domain"
	"github.com/imgship/imgship/internal/ports"
	"github.com/imgship/imgship/pkg/webhook"
)

// MessageSender implements ports.MessageSender using a webhook client
// bound to one channel URL.
type MessageSender struct {
	client *webhook.Client
	logger ports.Logger
}

// NewMessageSender creates a sender that delivers through client.
func NewMessageSender(client *webhook.Client, logger ports.Logger) *MessageSender {
	return &MessageSender{
		client: client,
		logger: logger,
	}
}

// Send executes one webhook message carrying the caption and the group.
func (s *MessageSender) Send(ctx context.Context, caption string, attachments []domain.Attachment) error {
	files := make([]webhook.File, len(attachments))
	for i, a := range attachments {
		files[i] = webhook.File{Name: a.Filename, Data: a.Data}
	}

	s.logger.Debug("executing webhook",
		ports.Int("files", len(files)),
		ports.Int("caption_chars", len(caption)),
	)

	return s.client.Execute(ctx, webhook.Message{Content: caption, Files: files})
}
