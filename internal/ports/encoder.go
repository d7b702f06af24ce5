package ports

import (
	"image"

	"github.com/imgship/imgship/internal/domain"
)

// AttachmentEncoder encodes one image into an attachment staged inside
// dir. The index determines the attachment's filename and therefore its
// position in the channel; implementations apply the configured size
// guard before returning.
type AttachmentEncoder interface {
	Encode(img image.Image, index int, dir string) (domain.Attachment, error)
}
