package webhook

// Discord-imposed message limits.
const (
	// MaxFiles is the maximum number of attachments one message may carry.
	MaxFiles = 4

	// MaxContentLength is the maximum content length in characters
	// (Unicode code points, not bytes).
	MaxContentLength = 2000
)

// File is one attachment. Name doubles as the multipart part name and
// the filename presented in the channel.
type File struct {
	Name string
	Data []byte
}

// Size returns the payload size in bytes.
func (f File) Size() int { return len(f.Data) }

// Message is one webhook execution: optional content plus up to
// MaxFiles attachments. A message with neither content nor files is
// rejected by Discord, not by this client.
type Message struct {
	Content string
	Files   []File
}

// TotalBytes returns the combined size of all attachments.
func (m Message) TotalBytes() int {
	n := 0
	for _, f := range m.Files {
		n += len(f.Data)
	}
	return n
}

// truncateContent caps s at MaxContentLength code points. Content over
// the limit is cut, never rejected.
func truncateContent(s string) string {
	r := []rune(s)
	if len(r) <= MaxContentLength {
		return s
	}
	return string(r[:MaxContentLength])
}
