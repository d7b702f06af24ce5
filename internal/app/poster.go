package app

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/imgship/imgship/internal/domain"
	"github.com/imgship/imgship/internal/ports"
	"github.com/imgship/imgship/pkg/tensor"
)

// PosterConfig carries the delivery policy for a Poster.
type PosterConfig struct {
	// GroupSize is the maximum number of attachments per message.
	GroupSize int

	// DryRun logs what would be sent without performing network calls.
	DryRun bool
}

// Poster runs post invocations end to end: normalize the input, encode
// the images into a spool directory, deliver the attachments in groups.
// A Poster keeps no state between invocations and is safe for
// concurrent use.
type Poster struct {
	cfg     PosterConfig
	sender  ports.MessageSender
	encoder ports.AttachmentEncoder
	spooler ports.Spooler
	logger  ports.Logger
	emitter PostEventEmitter
}

// NewPoster wires a poster from its ports.
func NewPoster(
	cfg PosterConfig,
	sender ports.MessageSender,
	encoder ports.AttachmentEncoder,
	spooler ports.Spooler,
	logger ports.Logger,
	emitter PostEventEmitter,
) *Poster {
	return &Poster{
		cfg:     cfg,
		sender:  sender,
		encoder: encoder,
		spooler: spooler,
		logger:  logger,
		emitter: emitter,
	}
}

// Post normalizes src and delivers the resulting images under caption.
// A nil src posts the test card.
func (p *Poster) Post(ctx context.Context, src tensor.Array, caption string) error {
	inv := newInvocation(p.logger, p.emitter)
	inv.enter(PhaseNormalizing, "tensor input")

	frames, err := tensor.Normalize(src)
	if err != nil {
		inv.fail(err)
		return err
	}

	imgs := make([]image.Image, len(frames))
	for i, f := range frames {
		imgs[i] = f
	}
	return p.run(ctx, inv, imgs, caption)
}

// PostImages delivers already-decoded images under caption. An empty
// slice results in a caption-only message.
func (p *Poster) PostImages(ctx context.Context, imgs []image.Image, caption string) error {
	inv := newInvocation(p.logger, p.emitter)
	inv.enter(PhaseNormalizing, "pre-decoded input")
	return p.run(ctx, inv, imgs, caption)
}

// run carries an invocation from encoding through delivery. The spool
// directory lives exactly as long as the invocation, success or not.
func (p *Poster) run(ctx context.Context, inv *invocation, imgs []image.Image, caption string) error {
	inv.enter(PhaseEncoding, fmt.Sprintf("%d images", len(imgs)))

	post := domain.NewPost(caption)
	if len(imgs) > 0 {
		spool, err := p.spooler.Acquire()
		if err != nil {
			err = fmt.Errorf("acquire spool: %w", err)
			inv.fail(err)
			return err
		}
		defer func() {
			if cerr := spool.Close(); cerr != nil {
				p.logger.Warn("spool cleanup failed",
					ports.String("dir", spool.Dir()),
					ports.Err(cerr),
				)
			}
		}()

		for i, img := range imgs {
			att, err := p.encoder.Encode(img, i, spool.Dir())
			if err != nil {
				err = fmt.Errorf("encode image %d: %w", i, err)
				inv.fail(err)
				return err
			}
			post.Add(att)
		}
	}

	return p.deliver(ctx, inv, post)
}

// deliver sends the post's groups sequentially, stopping at the first
// failure. Earlier groups stay delivered; later groups are never
// attempted. A post without attachments still sends its caption.
func (p *Poster) deliver(ctx context.Context, inv *invocation, post *domain.Post) error {
	groups := post.Groups(p.cfg.GroupSize)

	reason := fmt.Sprintf("%d groups", len(groups))
	if post.Empty() {
		reason = "caption only"
	}
	inv.enter(PhaseDelivering, reason)

	if post.Empty() {
		if err := p.sendGroup(ctx, inv, post.Caption, nil, 1, 1); err != nil {
			inv.fail(err)
			return err
		}
		inv.finish()
		return nil
	}

	for gi, group := range groups {
		if err := p.sendGroup(ctx, inv, post.Caption, group, gi+1, len(groups)); err != nil {
			inv.fail(err)
			return err
		}
	}

	inv.finish()
	return nil
}

// sendGroup delivers one message. Group indices are 1-based. There is
// no retry: the caller decides what a failure means.
func (p *Poster) sendGroup(ctx context.Context, inv *invocation, caption string, atts []domain.Attachment, group, groups int) error {
	select {
	case <-ctx.Done():
		err := domain.ErrContextCanceled
		if p.emitter != nil {
			p.emitter.OnGroupError(err, group, groups, len(atts))
		}
		return err
	default:
	}

	bytes := 0
	for _, a := range atts {
		bytes += a.Size()
	}

	if p.cfg.DryRun {
		p.logger.Info("dry run: skipping delivery",
			ports.String("invocation", inv.id),
			ports.Int("group", group),
			ports.Int("groups", groups),
			ports.Int("files", len(atts)),
			ports.Int("bytes", bytes),
		)
		return nil
	}

	start := time.Now()
	if err := p.sender.Send(ctx, caption, atts); err != nil {
		wrapped := fmt.Errorf("send group %d/%d: %w", group, groups, err)
		if p.emitter != nil {
			p.emitter.OnGroupError(wrapped, group, groups, len(atts))
		}
		p.logger.Error("group delivery failed",
			ports.String("invocation", inv.id),
			ports.Int("group", group),
			ports.Int("groups", groups),
			ports.Int("files", len(atts)),
			ports.Err(err),
		)
		return wrapped
	}
	duration := time.Since(start)

	if p.emitter != nil {
		p.emitter.OnGroupSent(group, groups, len(atts), bytes, duration)
	}
	p.logger.Info("group delivered",
		ports.String("invocation", inv.id),
		ports.Int("group", group),
		ports.Int("groups", groups),
		ports.Int("files", len(atts)),
		ports.Int("bytes", bytes),
		ports.Duration("duration", duration),
	)

	return nil
}
