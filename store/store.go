// Package store implements the board's document model on top of the raw
// key-value substrate. The substrate has no transactions, no compare-and-swap
// and no secondary indexes, so uniqueness, ordering, size limits and
// cascading deletion are all maintained here by hand. Every operation is a
// plain read-modify-write; interleavings can lose counter updates and a crash
// mid-cascade can orphan a blob or index entry. Readers resolve dangling
// references to "not found", which keeps those races harmless at this
// deployment's concurrency.
package store

import (
	"context"
	"encoding/json"

	"kvboard/kv"
	"kvboard/metrics"
	"kvboard/models"
	"kvboard/utils"
)

// Substrate key layout. Binary blobs are stored base64 encoded because the
// substrate only holds strings.
const (
	postKeyPrefix    = "post:"
	postIndexKey     = "posts:index"
	maintenanceKey   = "maintenance"
	bansKey          = "bans"
	reportIndexKey   = "reports:index"
	reportKeyPrefix  = "report:"
	adminTokenPrefix = "admin:token:"
	fileKeyPrefix    = "file:"
)

// decodeJSON unmarshals a stored value. A value that no longer parses is
// counted and logged as corruption, then treated as absent by callers.
func decodeJSON(raw, kind, key string, v any) bool {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		metrics.CorruptValues.WithLabelValues(kind).Inc()
		if utils.Sugar != nil {
			utils.Sugar.Warnf("corrupt %s value at key=%s: %v", kind, key, err)
		}
		return false
	}
	return true
}

// corruptBlob records a blob whose base64 payload no longer decodes.
func corruptBlob(key string, err error) {
	metrics.CorruptValues.WithLabelValues("blob").Inc()
	if utils.Sugar != nil {
		utils.Sugar.Warnf("corrupt blob value at key=%s: %v", key, err)
	}
}

// loadPost reads and decodes post:<id>. Missing and corrupt documents both
// resolve to absent.
func loadPost(ctx context.Context, store kv.Store, id string) (*models.Post, bool, error) {
	raw, ok, err := store.Get(ctx, postKeyPrefix+id)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	var post models.Post
	if !decodeJSON(raw, "post", postKeyPrefix+id, &post) {
		return nil, false, nil
	}
	return &post, true, nil
}

func savePost(ctx context.Context, store kv.Store, post *models.Post) error {
	b, err := json.Marshal(post)
	if err != nil {
		return err
	}
	return store.Put(ctx, postKeyPrefix+post.ID, string(b), 0)
}
