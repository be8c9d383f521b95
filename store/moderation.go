package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"kvboard/kv"
	"kvboard/models"
	"kvboard/utils"
)

// Moderation owns the ban list and the report log. It is independent of the
// post repository except for snapshotting post content into new reports.
type Moderation struct {
	kv    kv.Store
	index *Index
}

// NewModeration builds the moderation store over reports:index.
func NewModeration(store kv.Store) *Moderation {
	return &Moderation{kv: store, index: NewReportIndex(store)}
}

// Bans returns the deduplicated ban list. Missing and corrupt values read as
// empty.
func (m *Moderation) Bans(ctx context.Context) ([]string, error) {
	raw, ok, err := m.kv.Get(ctx, bansKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var ips []string
	if !decodeJSON(raw, "bans", bansKey, &ips) {
		return nil, nil
	}
	return ips, nil
}

// Ban adds ip to the ban list.
func (m *Moderation) Ban(ctx context.Context, ip string) error {
	ips, err := m.Bans(ctx)
	if err != nil {
		return err
	}
	return m.saveBans(ctx, append(ips, ip))
}

// Unban removes ip from the ban list; a no-op if absent.
func (m *Moderation) Unban(ctx context.Context, ip string) error {
	ips, err := m.Bans(ctx)
	if err != nil {
		return err
	}
	kept := ips[:0]
	for _, v := range ips {
		if v != ip {
			kept = append(kept, v)
		}
	}
	return m.saveBans(ctx, kept)
}

// IsBanned reports ban-list membership.
func (m *Moderation) IsBanned(ctx context.Context, ip string) (bool, error) {
	ips, err := m.Bans(ctx)
	if err != nil {
		return false, err
	}
	for _, v := range ips {
		if v == ip {
			return true, nil
		}
	}
	return false, nil
}

func (m *Moderation) saveBans(ctx context.Context, ips []string) error {
	if ips == nil {
		ips = []string{}
	}
	b, err := json.Marshal(dedupe(ips))
	if err != nil {
		return err
	}
	return m.kv.Put(ctx, bansKey, string(b), 0)
}

// AddReport stores a new report with an embedded snapshot of the referenced
// post, or a nil snapshot when the post no longer exists, and indexes it.
func (m *Moderation) AddReport(ctx context.Context, postID, reason, message, reporterIP string) (*models.Report, error) {
	report := &models.Report{
		ID:         uuid.NewString(),
		PostID:     postID,
		Reason:     reason,
		Message:    utils.Sanitize(message),
		Timestamp:  time.Now().UTC(),
		ReporterIP: reporterIP,
	}

	post, ok, err := loadPost(ctx, m.kv, postID)
	if err != nil {
		return nil, err
	}
	if ok {
		report.Post = &models.PostSnapshot{
			ID:      post.ID,
			Title:   post.Title,
			Text:    post.Text,
			OwnerIP: post.OwnerIP,
		}
	}

	b, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	if err := m.kv.Put(ctx, reportKeyPrefix+report.ID, string(b), 0); err != nil {
		return nil, err
	}
	if err := m.index.Add(ctx, report.ID); err != nil {
		return nil, err
	}
	return report, nil
}

// Reports resolves the report index into full report objects, skipping ids
// whose document is missing or corrupt.
func (m *Moderation) Reports(ctx context.Context) ([]models.Report, error) {
	ids, err := m.index.List(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]models.Report, 0, len(ids))
	for _, id := range ids {
		raw, ok, err := m.kv.Get(ctx, reportKeyPrefix+id)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var report models.Report
		if !decodeJSON(raw, "report", reportKeyPrefix+id, &report) {
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// IgnoreReport permanently deletes the report document and drops it from the
// index. Despite the name this is destructive, not archival; the original
// product behaves this way and callers depend on it.
func (m *Moderation) IgnoreReport(ctx context.Context, id string) error {
	if err := m.kv.Delete(ctx, reportKeyPrefix+id); err != nil {
		return err
	}
	return m.index.Remove(ctx, id)
}
