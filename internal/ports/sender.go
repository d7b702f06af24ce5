package ports

import (
	"context"

	"github.com/imgship/imgship/internal/domain"
)

// MessageSender delivers one message to the destination channel: a
// caption plus at most one delivery group of attachments. An empty
// attachment list sends a caption-only message.
//
// Implementations must not retry; delivery failures surface to the
// caller unchanged.
type MessageSender interface {
	Send(ctx context.Context, caption string, attachments []domain.Attachment) error
}
