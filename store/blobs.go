package store

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/google/uuid"

	"kvboard/kv"
	"kvboard/models"
)

// MaxBlobSize is the per-file ceiling; substrate values top out at 25 MiB.
const MaxBlobSize = 25 << 20

// metaScanLimit bounds how many recent posts a display-meta lookup walks.
// A full reverse index is not worth the write amplification for a board this
// small; files of older posts fall back to a generic MIME type.
const metaScanLimit = 80

// Blobs stores binary attachments as base64 text under file:<postId>:<uuid>.
type Blobs struct {
	kv        kv.Store
	postIndex *Index
}

// NewBlobs builds the blob store. The post index feeds bounded display-meta
// scans.
func NewBlobs(store kv.Store, postIndex *Index) *Blobs {
	return &Blobs{kv: store, postIndex: postIndex}
}

// Put encodes and stores one attachment under a key scoped to the owning
// post, returning that key. Files over MaxBlobSize fail with
// AttachmentTooLargeError before anything is written.
func (b *Blobs) Put(ctx context.Context, postID string, up models.AttachmentUpload) (string, error) {
	if up.Size > MaxBlobSize {
		return "", &AttachmentTooLargeError{Name: up.Name}
	}
	data, err := io.ReadAll(io.LimitReader(up.Data, MaxBlobSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxBlobSize {
		return "", &AttachmentTooLargeError{Name: up.Name}
	}

	key := fmt.Sprintf("%s%s:%s", fileKeyPrefix, postID, uuid.NewString())
	if err := b.kv.Put(ctx, key, base64.StdEncoding.EncodeToString(data), 0); err != nil {
		return "", err
	}
	return key, nil
}

// Get returns the decoded bytes, or absent. A value that no longer decodes is
// counted as corruption and reads as absent.
func (b *Blobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, ok, err := b.kv.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		corruptBlob(key, err)
		return nil, false, nil
	}
	return data, true, nil
}

// Delete removes the blob; a no-op if absent.
func (b *Blobs) Delete(ctx context.Context, key string) error {
	return b.kv.Delete(ctx, key)
}

// ResolveDisplayMeta recovers name and MIME type for serving a blob by
// scanning the attachment lists of the most recent indexed posts. Best
// effort: blobs owned by posts beyond the scan window resolve to absent and
// callers fall back to application/octet-stream.
func (b *Blobs) ResolveDisplayMeta(ctx context.Context, key string) (*models.Attachment, bool, error) {
	ids, err := b.postIndex.List(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(ids) > metaScanLimit {
		ids = ids[:metaScanLimit]
	}
	for _, id := range ids {
		post, ok, err := loadPost(ctx, b.kv, id)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}
		for i := range post.Attachments {
			if post.Attachments[i].Key == key {
				return &post.Attachments[i], true, nil
			}
		}
	}
	return nil, false, nil
}
