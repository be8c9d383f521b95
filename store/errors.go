package store

import (
	"errors"
	"fmt"
)

// Validation failures are distinct from absence: they reject the request, a
// missing document is just a false second return value.
var (
	// ErrEmptyComment rejects comments that are empty after trimming.
	ErrEmptyComment = errors.New("empty comment")

	// ErrAdminSecretUnset means the admin password is missing or still the
	// shipped placeholder; login cannot proceed until it is configured.
	ErrAdminSecretUnset = errors.New("ADMIN_PASSWORD is not set")
)

// AttachmentTooLargeError names the file that blew the per-blob ceiling.
type AttachmentTooLargeError struct {
	Name string
}

func (e *AttachmentTooLargeError) Error() string {
	return fmt.Sprintf("File too large (max 25MB): %s", e.Name)
}
