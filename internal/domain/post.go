package domain

// Attachment is one encoded image ready for delivery: a filename as it
// will appear in the channel, plus the finished payload bytes.
type Attachment struct {
	Filename string
	Data     []byte
}

// Size returns the payload size in bytes.
func (a Attachment) Size() int { return len(a.Data) }

// Post is an aggregate of attachments delivered under one caption.
// Attachment order is the order images were produced and is preserved
// through grouping and delivery.
type Post struct {
	// Caption accompanies every delivery group of this post.
	Caption string

	// Attachments holds the encoded images in production order.
	Attachments []Attachment
}

// NewPost creates an empty post with the given caption.
func NewPost(caption string) *Post {
	return &Post{Caption: caption}
}

// Add appends an attachment to the post.
func (p *Post) Add(a Attachment) {
	p.Attachments = append(p.Attachments, a)
}

// Size returns the number of attachments in the post.
func (p *Post) Size() int {
	return len(p.Attachments)
}

// Empty returns true if the post has no attachments.
func (p *Post) Empty() bool {
	return len(p.Attachments) == 0
}

// TotalBytes returns the combined payload size of all attachments.
func (p *Post) TotalBytes() int {
	total := 0
	for _, a := range p.Attachments {
		total += len(a.Data)
	}
	return total
}

// Groups partitions the attachments into delivery groups of at most
// size entries each, preserving order: every group except possibly the
// last is full. An empty post yields no groups; callers decide whether
// the caption alone still warrants a message. A size below 1 also
// yields no groups.
func (p *Post) Groups(size int) [][]Attachment {
	if size < 1 || p.Empty() {
		return nil
	}
	groups := make([][]Attachment, 0, (len(p.Attachments)+size-1)/size)
	for start := 0; start < len(p.Attachments); start += size {
		end := start + size
		if end > len(p.Attachments) {
			end = len(p.Attachments)
		}
		groups = append(groups, p.Attachments[start:end])
	}
	return groups
}
