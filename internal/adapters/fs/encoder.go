package fs

import (
	"image"

	"github.com/imgship/imgship/internal/domain"
	"github.com/imgship/imgship/pkg/encode"
)

// AttachmentEncoder implements ports.AttachmentEncoder on top of the
// public encode package, translating its webhook files into domain
// attachments.
type AttachmentEncoder struct {
	enc encode.Encoder
}

// NewAttachmentEncoder creates an encoder with the given size ceiling
// in bytes. Zero means the encode package default.
func NewAttachmentEncoder(maxBytes int64) *AttachmentEncoder {
	return &AttachmentEncoder{enc: encode.Encoder{MaxBytes: maxBytes}}
}

// Encode stages img into dir as image_<index>.png.
func (a *AttachmentEncoder) Encode(img image.Image, index int, dir string) (domain.Attachment, error) {
	f, err := a.enc.Encode(img, index, dir)
	if err != nil {
		return domain.Attachment{}, err
	}
	return domain.Attachment{Filename: f.Name, Data: f.Data}, nil
}
