package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"testing"

	"github.com/imgship/imgship/internal/domain"
	"github.com/imgship/imgship/internal/ports"
	"github.com/imgship/imgship/pkg/tensor"
)

var errSendBoom = errors.New("boom")

type sentCall struct {
	caption string
	files   []string
	bytes   int
}

// fakeSender records every Send call. failAt is a 1-based call index at
// which Send returns errSendBoom; zero disables failure.
type fakeSender struct {
	mu     sync.Mutex
	calls  []sentCall
	failAt int
}

func (s *fakeSender) Send(ctx context.Context, caption string, atts []domain.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := sentCall{caption: caption}
	for _, a := range atts {
		call.files = append(call.files, a.Filename)
		call.bytes += a.Size()
	}
	s.calls = append(s.calls, call)

	if s.failAt > 0 && len(s.calls) == s.failAt {
		return errSendBoom
	}
	return nil
}

func (s *fakeSender) all() []sentCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sentCall, len(s.calls))
	copy(out, s.calls)
	return out
}

type encodeCall struct {
	index  int
	dir    string
	bounds image.Rectangle
}

// fakeEncoder returns synthetic attachments without touching the disk.
// failAt is a 1-based call index at which Encode fails; zero disables.
type fakeEncoder struct {
	mu     sync.Mutex
	calls  []encodeCall
	failAt int
}

func (e *fakeEncoder) Encode(img image.Image, index int, dir string) (domain.Attachment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, encodeCall{index: index, dir: dir, bounds: img.Bounds()})
	if e.failAt > 0 && len(e.calls) == e.failAt {
		return domain.Attachment{}, errors.New("png encode failed")
	}
	return domain.Attachment{
		Filename: fmt.Sprintf("image_%d.png", index),
		Data:     make([]byte, 8),
	}, nil
}

func (e *fakeEncoder) all() []encodeCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]encodeCall, len(e.calls))
	copy(out, e.calls)
	return out
}

type fakeSpool struct {
	dir      string
	closeErr error

	mu     sync.Mutex
	closed int
}

func (s *fakeSpool) Dir() string { return s.dir }

func (s *fakeSpool) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return s.closeErr
}

func (s *fakeSpool) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type fakeSpooler struct {
	err      error // returned by Acquire
	closeErr error // returned by the spool's Close

	mu     sync.Mutex
	spools []*fakeSpool
}

func (s *fakeSpooler) Acquire() (ports.Spool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	sp := &fakeSpool{dir: fmt.Sprintf("/spool/%d", len(s.spools)), closeErr: s.closeErr}
	s.spools = append(s.spools, sp)
	return sp, nil
}

func (s *fakeSpooler) acquired() []*fakeSpool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*fakeSpool, len(s.spools))
	copy(out, s.spools)
	return out
}

func newTestPoster(cfg PosterConfig) (*Poster, *fakeSender, *fakeEncoder, *fakeSpooler, *mockPostEmitter) {
	sender := &fakeSender{}
	encoder := &fakeEncoder{}
	spooler := &fakeSpooler{}
	emitter := &mockPostEmitter{}
	p := NewPoster(cfg, sender, encoder, spooler, mockLogger{}, emitter)
	return p, sender, encoder, spooler, emitter
}

// frameTensor builds a batch of n single-pixel RGB frames.
func frameTensor(t *testing.T, n int) *tensor.Tensor {
	t.Helper()
	data := make([]float32, n*3)
	for i := range data {
		data[i] = 0.5
	}
	ts, err := tensor.New([]int{n, 1, 1, 3}, data)
	if err != nil {
		t.Fatalf("tensor.New: %v", err)
	}
	return ts
}

func testImages(n int) []image.Image {
	imgs := make([]image.Image, n)
	for i := range imgs {
		imgs[i] = image.NewNRGBA(image.Rect(0, 0, 2, 2))
	}
	return imgs
}

func TestPoster_Post_GroupsOfFour(t *testing.T) {
	p, sender, encoder, spooler, emitter := newTestPoster(PosterConfig{GroupSize: 4})

	if err := p.Post(context.Background(), frameTensor(t, 10), "ten frames"); err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	calls := sender.all()
	if len(calls) != 3 {
		t.Fatalf("got %d sends, want 3", len(calls))
	}
	wantCounts := []int{4, 4, 2}
	next := 0
	for gi, call := range calls {
		if call.caption != "ten frames" {
			t.Errorf("group %d caption = %q, want %q", gi+1, call.caption, "ten frames")
		}
		if len(call.files) != wantCounts[gi] {
			t.Errorf("group %d has %d files, want %d", gi+1, len(call.files), wantCounts[gi])
		}
		for _, name := range call.files {
			want := fmt.Sprintf("image_%d.png", next)
			if name != want {
				t.Errorf("file = %q, want %q", name, want)
			}
			next++
		}
	}

	sent := emitter.allSent()
	if len(sent) != 3 {
		t.Fatalf("got %d OnGroupSent events, want 3", len(sent))
	}
	for gi, ev := range sent {
		if ev.group != gi+1 || ev.groups != 3 {
			t.Errorf("event %d = group %d/%d, want %d/3", gi, ev.group, ev.groups, gi+1)
		}
		if ev.files != wantCounts[gi] {
			t.Errorf("event %d files = %d, want %d", gi, ev.files, wantCounts[gi])
		}
		if ev.bytes != wantCounts[gi]*8 {
			t.Errorf("event %d bytes = %d, want %d", gi, ev.bytes, wantCounts[gi]*8)
		}
	}

	spools := spooler.acquired()
	if len(spools) != 1 {
		t.Fatalf("got %d spools, want 1", len(spools))
	}
	if spools[0].closeCount() != 1 {
		t.Errorf("spool closed %d times, want 1", spools[0].closeCount())
	}
	for _, call := range encoder.all() {
		if call.dir != spools[0].dir {
			t.Errorf("encode dir = %q, want %q", call.dir, spools[0].dir)
		}
	}

	phases := emitter.allPhases()
	wantPhases := []phaseChange{
		{PhaseIdle, PhaseNormalizing, "tensor input"},
		{PhaseNormalizing, PhaseEncoding, "10 images"},
		{PhaseEncoding, PhaseDelivering, "3 groups"},
		{PhaseDelivering, PhaseDone, "all groups delivered"},
	}
	if len(phases) != len(wantPhases) {
		t.Fatalf("got %d phase events, want %d", len(phases), len(wantPhases))
	}
	for i, w := range wantPhases {
		if phases[i] != w {
			t.Errorf("phases[%d] = %+v, want %+v", i, phases[i], w)
		}
	}
}

func TestPoster_Post_NilTensorPostsTestCard(t *testing.T) {
	p, sender, encoder, _, _ := newTestPoster(PosterConfig{GroupSize: 4})

	if err := p.Post(context.Background(), nil, "no image provided"); err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	encodes := encoder.all()
	if len(encodes) != 1 {
		t.Fatalf("got %d encodes, want 1", len(encodes))
	}
	if got := encodes[0].bounds; got.Dx() != 128 || got.Dy() != 128 {
		t.Errorf("test card bounds = %dx%d, want 128x128", got.Dx(), got.Dy())
	}

	calls := sender.all()
	if len(calls) != 1 || len(calls[0].files) != 1 {
		t.Fatalf("sends = %+v, want one send with one file", calls)
	}
}

func TestPoster_PostImages_Empty_CaptionOnly(t *testing.T) {
	p, sender, _, spooler, emitter := newTestPoster(PosterConfig{GroupSize: 4})

	if err := p.PostImages(context.Background(), nil, "hello"); err != nil {
		t.Fatalf("PostImages() error = %v", err)
	}

	if got := len(spooler.acquired()); got != 0 {
		t.Errorf("acquired %d spools for empty post, want 0", got)
	}

	calls := sender.all()
	if len(calls) != 1 {
		t.Fatalf("got %d sends, want 1", len(calls))
	}
	if calls[0].caption != "hello" || len(calls[0].files) != 0 {
		t.Errorf("send = %+v, want caption-only message", calls[0])
	}

	sent := emitter.allSent()
	if len(sent) != 1 || sent[0].group != 1 || sent[0].groups != 1 || sent[0].files != 0 {
		t.Errorf("OnGroupSent events = %+v, want single 1/1 with no files", sent)
	}

	phases := emitter.allPhases()
	if len(phases) != 4 {
		t.Fatalf("got %d phase events, want 4", len(phases))
	}
	if phases[2].reason != "caption only" {
		t.Errorf("delivering reason = %q, want %q", phases[2].reason, "caption only")
	}
}

func TestPoster_Post_EmptyBatch_CaptionOnly(t *testing.T) {
	p, sender, _, spooler, _ := newTestPoster(PosterConfig{GroupSize: 4})

	if err := p.Post(context.Background(), frameTensor(t, 0), "empty batch"); err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if got := len(spooler.acquired()); got != 0 {
		t.Errorf("acquired %d spools, want 0", got)
	}
	calls := sender.all()
	if len(calls) != 1 || len(calls[0].files) != 0 {
		t.Fatalf("sends = %+v, want one caption-only send", calls)
	}
}

func TestPoster_Post_ShapeError(t *testing.T) {
	p, sender, _, spooler, emitter := newTestPoster(PosterConfig{GroupSize: 4})

	bad, err := tensor.New([]int{2, 3}, make([]float32, 6))
	if err != nil {
		t.Fatalf("tensor.New: %v", err)
	}

	err = p.Post(context.Background(), bad, "bad shape")
	var shapeErr *tensor.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Post() error = %v, want *tensor.ShapeError", err)
	}

	if got := len(spooler.acquired()); got != 0 {
		t.Errorf("acquired %d spools after shape error, want 0", got)
	}
	if got := len(sender.all()); got != 0 {
		t.Errorf("got %d sends after shape error, want 0", got)
	}

	phases := emitter.allPhases()
	if last := phases[len(phases)-1]; last.to != PhaseFailed {
		t.Errorf("last phase = %v, want %v", last.to, PhaseFailed)
	}
}

func TestPoster_EncodeFailure(t *testing.T) {
	p, sender, encoder, spooler, emitter := newTestPoster(PosterConfig{GroupSize: 4})
	encoder.failAt = 2

	err := p.PostImages(context.Background(), testImages(3), "caption")
	if err == nil {
		t.Fatal("PostImages() succeeded, want encode error")
	}
	if !strings.Contains(err.Error(), "encode image 1") {
		t.Errorf("error = %v, want mention of image 1", err)
	}

	if got := len(sender.all()); got != 0 {
		t.Errorf("got %d sends after encode failure, want 0", got)
	}

	spools := spooler.acquired()
	if len(spools) != 1 || spools[0].closeCount() != 1 {
		t.Errorf("spool not cleaned up after encode failure: %+v", spools)
	}

	phases := emitter.allPhases()
	if last := phases[len(phases)-1]; last.to != PhaseFailed {
		t.Errorf("last phase = %v, want %v", last.to, PhaseFailed)
	}
}

func TestPoster_SpoolFailure(t *testing.T) {
	p, sender, encoder, spooler, _ := newTestPoster(PosterConfig{GroupSize: 4})
	spooler.err = errors.New("disk full")

	err := p.PostImages(context.Background(), testImages(1), "caption")
	if err == nil || !strings.Contains(err.Error(), "acquire spool") {
		t.Fatalf("PostImages() error = %v, want acquire spool failure", err)
	}

	if got := len(encoder.all()); got != 0 {
		t.Errorf("got %d encodes without a spool, want 0", got)
	}
	if got := len(sender.all()); got != 0 {
		t.Errorf("got %d sends without a spool, want 0", got)
	}
}

func TestPoster_DeliveryFailure_StopsAtFirstError(t *testing.T) {
	p, sender, _, spooler, emitter := newTestPoster(PosterConfig{GroupSize: 4})
	sender.failAt = 2

	err := p.PostImages(context.Background(), testImages(10), "caption")
	if !errors.Is(err, errSendBoom) {
		t.Fatalf("PostImages() error = %v, want wrapped errSendBoom", err)
	}
	if !strings.Contains(err.Error(), "send group 2/3") {
		t.Errorf("error = %v, want mention of group 2/3", err)
	}

	if got := len(sender.all()); got != 2 {
		t.Errorf("got %d sends, want 2 (later groups never attempted)", got)
	}

	sent := emitter.allSent()
	if len(sent) != 1 || sent[0].group != 1 {
		t.Errorf("OnGroupSent events = %+v, want only group 1", sent)
	}

	failed := emitter.allFailed()
	if len(failed) != 1 {
		t.Fatalf("got %d OnGroupError events, want 1", len(failed))
	}
	if failed[0].group != 2 || failed[0].groups != 3 || failed[0].files != 4 {
		t.Errorf("OnGroupError = %+v, want group 2/3 with 4 files", failed[0])
	}

	spools := spooler.acquired()
	if len(spools) != 1 || spools[0].closeCount() != 1 {
		t.Errorf("spool not cleaned up after delivery failure: %+v", spools)
	}

	phases := emitter.allPhases()
	if last := phases[len(phases)-1]; last.to != PhaseFailed {
		t.Errorf("last phase = %v, want %v", last.to, PhaseFailed)
	}
}

func TestPoster_DryRun(t *testing.T) {
	p, sender, encoder, _, emitter := newTestPoster(PosterConfig{GroupSize: 4, DryRun: true})

	if err := p.PostImages(context.Background(), testImages(5), "caption"); err != nil {
		t.Fatalf("PostImages() error = %v", err)
	}

	if got := len(encoder.all()); got != 5 {
		t.Errorf("got %d encodes, want 5 (dry run still encodes)", got)
	}
	if got := len(sender.all()); got != 0 {
		t.Errorf("got %d sends in dry run, want 0", got)
	}
	if got := len(emitter.allSent()); got != 0 {
		t.Errorf("got %d OnGroupSent events in dry run, want 0", got)
	}

	phases := emitter.allPhases()
	if last := phases[len(phases)-1]; last.to != PhaseDone {
		t.Errorf("last phase = %v, want %v", last.to, PhaseDone)
	}
}

func TestPoster_ContextCanceled(t *testing.T) {
	p, sender, _, spooler, emitter := newTestPoster(PosterConfig{GroupSize: 4})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.PostImages(ctx, testImages(2), "caption")
	if !errors.Is(err, domain.ErrContextCanceled) {
		t.Fatalf("PostImages() error = %v, want %v", err, domain.ErrContextCanceled)
	}

	if got := len(sender.all()); got != 0 {
		t.Errorf("got %d sends with canceled context, want 0", got)
	}
	failed := emitter.allFailed()
	if len(failed) != 1 || failed[0].group != 1 {
		t.Errorf("OnGroupError events = %+v, want group 1", failed)
	}

	spools := spooler.acquired()
	if len(spools) != 1 || spools[0].closeCount() != 1 {
		t.Errorf("spool not cleaned up after cancellation: %+v", spools)
	}
}

func TestPoster_SpoolCloseErrorDoesNotFailPost(t *testing.T) {
	p, sender, _, spooler, _ := newTestPoster(PosterConfig{GroupSize: 4})
	spooler.closeErr = errors.New("permission denied")

	if err := p.PostImages(context.Background(), testImages(1), "caption"); err != nil {
		t.Fatalf("PostImages() error = %v, want nil despite cleanup failure", err)
	}
	if got := len(sender.all()); got != 1 {
		t.Errorf("got %d sends, want 1", got)
	}
}
