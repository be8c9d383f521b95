package store

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"kvboard/kv"
	"kvboard/models"
	"kvboard/utils"
)

// Reaction kinds accepted by BumpReaction.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Posts owns the post lifecycle: create, read, reaction bumps, comment
// appends and cascading deletion.
type Posts struct {
	kv    kv.Store
	index *Index
	blobs *Blobs
}

// NewPosts composes the repository over the shared post index and blob store.
func NewPosts(store kv.Store, index *Index, blobs *Blobs) *Posts {
	return &Posts{kv: store, index: index, blobs: blobs}
}

// Create assigns a fresh id and timestamp, stores every attachment blob, then
// persists the post and indexes it. Attachments are processed one at a time;
// the first oversized file aborts the whole operation before the post is ever
// persisted or indexed. Blobs already written for earlier files in the batch
// are NOT rolled back — readers never see them, but they linger as orphans.
func (p *Posts) Create(ctx context.Context, title, text, ownerIP string, uploads []models.AttachmentUpload) (*models.Post, error) {
	title = utils.Sanitize(strings.TrimSpace(title))
	if title == "" {
		title = "Untitled"
	}
	text = utils.Sanitize(strings.TrimSpace(text))

	postID := uuid.NewString()

	attachments := make([]models.Attachment, 0, len(uploads))
	for _, up := range uploads {
		key, err := p.blobs.Put(ctx, postID, up)
		if err != nil {
			return nil, err
		}
		mimeType := up.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		name := up.Name
		if name == "" {
			name = "file"
		}
		attachments = append(attachments, models.Attachment{
			Key:      key,
			URL:      "/api/file/" + url.PathEscape(key),
			Kind:     models.KindFromMime(mimeType),
			Name:     name,
			MimeType: mimeType,
			Size:     up.Size,
		})
	}

	post := &models.Post{
		ID:          postID,
		Title:       title,
		Text:        text,
		Date:        time.Now().UTC(),
		Comments:    []models.Comment{},
		Attachments: attachments,
		OwnerIP:     ownerIP,
	}

	if err := savePost(ctx, p.kv, post); err != nil {
		return nil, err
	}
	if err := p.index.Add(ctx, post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// Get returns the post or absent. Malformed stored data reads as absent.
func (p *Posts) Get(ctx context.Context, id string) (*models.Post, bool, error) {
	return loadPost(ctx, p.kv, id)
}

// List returns ordered summaries, newest first. Index entries whose document
// is missing are skipped. The owner address is only included for admin views.
func (p *Posts) List(ctx context.Context, includePrivate bool) ([]models.PostSummary, error) {
	ids, err := p.index.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PostSummary, 0, len(ids))
	for _, id := range ids {
		post, ok, err := loadPost(ctx, p.kv, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		s := models.PostSummary{
			ID:          post.ID,
			Title:       post.Title,
			Text:        post.Text,
			Date:        post.Date,
			Likes:       post.Likes,
			Dislikes:    post.Dislikes,
			Comments:    len(post.Comments),
			Attachments: post.Attachments,
		}
		if s.Attachments == nil {
			s.Attachments = []models.Attachment{}
		}
		if includePrivate {
			s.OwnerIP = post.OwnerIP
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// ListFull resolves the index into complete post documents, owner addresses
// included. Admin listings only.
func (p *Posts) ListFull(ctx context.Context) ([]models.Post, error) {
	ids, err := p.index.List(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		post, ok, err := loadPost(ctx, p.kv, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		posts = append(posts, *post)
	}
	return posts, nil
}

// BumpReaction increments likes or dislikes by exactly one. Plain
// read-modify-write: two concurrent bumps on the same post can lose one
// update, a documented non-guarantee of the substrate model.
func (p *Posts) BumpReaction(ctx context.Context, id, kind string) (*models.Post, bool, error) {
	post, ok, err := loadPost(ctx, p.kv, id)
	if err != nil || !ok {
		return nil, false, err
	}
	switch kind {
	case ReactionLike:
		post.Likes++
	case ReactionDislike:
		post.Dislikes++
	}
	if err := savePost(ctx, p.kv, post); err != nil {
		return nil, false, err
	}
	return post, true, nil
}

// AddComment appends a comment with a fresh id and timestamp. Text that is
// empty after trimming fails with ErrEmptyComment.
func (p *Posts) AddComment(ctx context.Context, id, text string) (*models.Post, bool, error) {
	text = utils.Sanitize(strings.TrimSpace(text))
	if text == "" {
		return nil, false, ErrEmptyComment
	}

	post, ok, err := loadPost(ctx, p.kv, id)
	if err != nil || !ok {
		return nil, false, err
	}

	post.Comments = append(post.Comments, models.Comment{
		ID:   time.Now().UnixMilli(),
		Text: text,
		Date: time.Now().UTC(),
	})

	if err := savePost(ctx, p.kv, post); err != nil {
		return nil, false, err
	}
	return post, true, nil
}

// Delete removes every attachment blob, the post document and the index
// entry, in that order. The three steps are independent writes; a crash
// mid-sequence can leave a blob or index entry behind, which readers resolve
// to absent.
func (p *Posts) Delete(ctx context.Context, id string) (bool, error) {
	post, ok, err := loadPost(ctx, p.kv, id)
	if err != nil || !ok {
		return false, err
	}

	for _, att := range post.Attachments {
		if strings.HasPrefix(att.Key, fileKeyPrefix) {
			if err := p.blobs.Delete(ctx, att.Key); err != nil {
				return false, err
			}
		}
	}

	if err := p.kv.Delete(ctx, postKeyPrefix+id); err != nil {
		return false, err
	}
	if err := p.index.Remove(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
