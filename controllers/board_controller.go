package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kvboard/models"
	"kvboard/store"
	"kvboard/utils"
)

// BoardController serves the public board API.
type BoardController struct {
	posts *store.Posts
	blobs *store.Blobs
	mod   *store.Moderation
	auth  *store.Auth
}

// NewBoardController creates a new BoardController instance.
func NewBoardController(posts *store.Posts, blobs *store.Blobs, mod *store.Moderation, auth *store.Auth) *BoardController {
	return &BoardController{posts: posts, blobs: blobs, mod: mod, auth: auth}
}

// Status reports the maintenance flag so the frontend can show a banner.
func (b *BoardController) Status(ctx *gin.Context) {
	maintenance, err := b.auth.Maintenance(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	utils.OK(ctx, gin.H{"maintenance": maintenance})
}

// Login exchanges the admin password for an opaque session token.
func (b *BoardController) Login(ctx *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	_ = ctx.ShouldBindJSON(&req)

	token, ok, err := b.auth.Login(ctx.Request.Context(), req.Password)
	if errors.Is(err, store.ErrAdminSecretUnset) {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	if !ok {
		utils.OK(ctx, gin.H{"success": false})
		return
	}
	utils.OK(ctx, gin.H{"success": true, "token": token})
}

// ListPosts returns public post summaries, newest first.
func (b *BoardController) ListPosts(ctx *gin.Context) {
	posts, err := b.posts.List(ctx.Request.Context(), false)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

// GetPost returns a single post with its full comment list.
func (b *BoardController) GetPost(ctx *gin.Context) {
	post, ok, err := b.posts.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	if !ok {
		utils.Fail(ctx, http.StatusNotFound, "Post not found")
		return
	}
	// owner address never leaves through the public read path
	post.OwnerIP = ""
	ctx.JSON(http.StatusOK, post)
}

// Like bumps the like counter by one.
func (b *BoardController) Like(ctx *gin.Context) {
	b.react(ctx, store.ReactionLike)
}

// Dislike bumps the dislike counter by one.
func (b *BoardController) Dislike(ctx *gin.Context) {
	b.react(ctx, store.ReactionDislike)
}

func (b *BoardController) react(ctx *gin.Context, kind string) {
	post, ok, err := b.posts.BumpReaction(ctx.Request.Context(), ctx.Param("id"), kind)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	if !ok {
		utils.Fail(ctx, http.StatusNotFound, "Post not found")
		return
	}
	utils.OK(ctx, gin.H{"likes": post.Likes, "dislikes": post.Dislikes})
}

// Comment appends a comment to a post.
func (b *BoardController) Comment(ctx *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	_ = ctx.ShouldBindJSON(&req)

	post, ok, err := b.posts.AddComment(ctx.Request.Context(), ctx.Param("id"), req.Text)
	if errors.Is(err, store.ErrEmptyComment) {
		utils.Fail(ctx, http.StatusBadRequest, "Empty comment")
		return
	}
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	if !ok {
		utils.Fail(ctx, http.StatusNotFound, "Post not found")
		return
	}
	utils.OK(ctx, gin.H{"ok": true, "comments": len(post.Comments)})
}

// Report files a moderation report against a post, snapshotting its content.
func (b *BoardController) Report(ctx *gin.Context) {
	var req struct {
		Reason  string `json:"reason"`
		Message string `json:"message"`
	}
	_ = ctx.ShouldBindJSON(&req)

	reason := req.Reason
	if reason == "" {
		reason = "Spam"
	}

	_, err := b.mod.AddReport(ctx.Request.Context(), ctx.Param("id"), reason,
		strings.TrimSpace(req.Message), utils.ClientIP(ctx))
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	utils.OK(ctx, gin.H{"ok": true})
}

// Upload creates a post from a multipart form: title, text, and any number
// of "files" parts. The first oversized file aborts creation entirely.
func (b *BoardController) Upload(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "invalid form data")
		return
	}

	title := strings.TrimSpace(firstValue(form.Value["title"]))
	text := strings.TrimSpace(firstValue(form.Value["text"]))

	uploads := make([]models.AttachmentUpload, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			utils.Fail(ctx, http.StatusBadRequest, "unreadable file: "+fh.Filename)
			return
		}
		defer f.Close()
		uploads = append(uploads, models.AttachmentUpload{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Data:     f,
		})
	}

	post, err := b.posts.Create(ctx.Request.Context(), title, text, utils.ClientIP(ctx), uploads)
	var tooLarge *store.AttachmentTooLargeError
	if errors.As(err, &tooLarge) {
		utils.Fail(ctx, http.StatusBadRequest, tooLarge.Error())
		return
	}
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	utils.OK(ctx, gin.H{"ok": true, "id": post.ID})
}

// ServeFile streams a stored attachment blob, recovering display metadata
// from recent posts when possible.
func (b *BoardController) ServeFile(ctx *gin.Context) {
	key := ctx.Param("key")
	if !strings.HasPrefix(key, "file:") {
		ctx.String(http.StatusNotFound, "Not found")
		return
	}

	data, ok, err := b.blobs.Get(ctx.Request.Context(), key)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	if !ok {
		ctx.String(http.StatusNotFound, "Not found")
		return
	}

	mimeType := "application/octet-stream"
	name := "file"
	if meta, found, err := b.blobs.ResolveDisplayMeta(ctx.Request.Context(), key); err == nil && found {
		if meta.MimeType != "" {
			mimeType = meta.MimeType
		}
		if meta.Name != "" {
			name = meta.Name
		}
	}
	safeName := strings.NewReplacer(`"`, "", `\`, "").Replace(name)

	ctx.Header("Content-Disposition", `inline; filename="`+safeName+`"`)
	ctx.Header("Cache-Control", "public, max-age=31536000, immutable")
	ctx.Data(http.StatusOK, mimeType, data)
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
