package models

import "time"

// PostSnapshot freezes the reported post's content at submission time, so a
// report keeps its evidentiary value after the post is edited or deleted.
type PostSnapshot struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	OwnerIP string `json:"ownerIp"`
}

// Report is the stored document under report:<id>. PostID is a weak
// reference; Post is nil when the post was already gone at report time.
type Report struct {
	ID         string        `json:"id"`
	PostID     string        `json:"postId"`
	Reason     string        `json:"reason"`
	Message    string        `json:"message"`
	Timestamp  time.Time     `json:"timestamp"`
	ReporterIP string        `json:"reporterIp"`
	Post       *PostSnapshot `json:"post"`
}
