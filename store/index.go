package store

import (
	"context"
	"encoding/json"

	"kvboard/kv"
)

// maxIndexEntries bounds index history. Overflow entries are silently
// dropped, a deliberate bounded-history trade-off rather than an error.
const maxIndexEntries = 500

// Index maintains a capped, deduplicated, newest-first id list under a single
// substrate key. It stands in for the secondary index the substrate lacks.
// Ordering is strictly insertion order, immune to clock skew between writers.
// The list may reference ids whose document was deleted out-of-band; readers
// resolve those lazily to "not found".
type Index struct {
	kv  kv.Store
	key string
}

// NewPostIndex returns the index over posts:index.
func NewPostIndex(store kv.Store) *Index {
	return &Index{kv: store, key: postIndexKey}
}

// NewReportIndex returns the index over reports:index.
func NewReportIndex(store kv.Store) *Index {
	return &Index{kv: store, key: reportIndexKey}
}

// List returns the current ordered id sequence. Missing and corrupt index
// values both read as empty.
func (ix *Index) List(ctx context.Context) ([]string, error) {
	raw, ok, err := ix.kv.Get(ctx, ix.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var ids []string
	if !decodeJSON(raw, "index", ix.key, &ids) {
		return nil, nil
	}
	return ids, nil
}

// Add prepends id, keeping the first occurrence of every id and at most
// maxIndexEntries entries.
func (ix *Index) Add(ctx context.Context, id string) error {
	ids, err := ix.List(ctx)
	if err != nil {
		return err
	}
	return ix.save(ctx, dedupe(append([]string{id}, ids...)))
}

// Remove filters id out of the sequence; a no-op if absent.
func (ix *Index) Remove(ctx context.Context, id string) error {
	ids, err := ix.List(ctx)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return ix.save(ctx, kept)
}

func (ix *Index) save(ctx context.Context, ids []string) error {
	if len(ids) > maxIndexEntries {
		ids = ids[:maxIndexEntries]
	}
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return ix.kv.Put(ctx, ix.key, string(b), 0)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
