package models

import (
	"io"
	"strings"
	"time"
)

// AttachmentKind buckets attachments by how the frontend renders them.
type AttachmentKind string

const (
	KindImage AttachmentKind = "image"
	KindVideo AttachmentKind = "video"
	KindAudio AttachmentKind = "audio"
	KindFile  AttachmentKind = "file"
)

// KindFromMime classifies a MIME type into a render kind.
func KindFromMime(mimeType string) AttachmentKind {
	t := strings.ToLower(mimeType)
	switch {
	case strings.HasPrefix(t, "image/"):
		return KindImage
	case strings.HasPrefix(t, "video/"):
		return KindVideo
	case strings.HasPrefix(t, "audio/"):
		return KindAudio
	default:
		return KindFile
	}
}

// Attachment describes one uploaded file of a post. The metadata lives inline
// on the post document; the bytes themselves live under Key in the substrate.
// Attachments are fixed at post creation and deleted only with the post.
type Attachment struct {
	Key      string         `json:"key"`
	URL      string         `json:"url"`
	Kind     AttachmentKind `json:"kind"`
	Name     string         `json:"name"`
	MimeType string         `json:"mimetype"`
	Size     int64          `json:"size"`
}

// Comment is an append-only child of its post. Ids are wall-clock derived
// (UnixMilli), which is not collision free under concurrent appends to the
// same post; accepted at this deployment's concurrency.
type Comment struct {
	ID   int64     `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// Post is the stored document under post:<id>. OwnerIP is captured once at
// creation and must never reach public views.
type Post struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Text        string       `json:"text"`
	Date        time.Time    `json:"date"`
	Likes       int          `json:"likes"`
	Dislikes    int          `json:"dislikes"`
	Comments    []Comment    `json:"comments"`
	Attachments []Attachment `json:"attachments"`
	OwnerIP     string       `json:"ownerIp,omitempty"`
}

// PostSummary is the list view: comments collapsed to a count, owner address
// only present on admin listings.
type PostSummary struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Text        string       `json:"text"`
	Date        time.Time    `json:"date"`
	Likes       int          `json:"likes"`
	Dislikes    int          `json:"dislikes"`
	Comments    int          `json:"comments"`
	Attachments []Attachment `json:"attachments"`
	OwnerIP     string       `json:"ownerIp,omitempty"`
}

// AttachmentUpload is a pending file handed in by the request layer.
type AttachmentUpload struct {
	Name     string
	MimeType string
	Size     int64
	Data     io.Reader
}
