package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kvboard/store"
	"kvboard/utils"
)

// AdminController serves the moderation API. Every route is guarded by the
// AdminRequired middleware.
type AdminController struct {
	posts *store.Posts
	mod   *store.Moderation
	auth  *store.Auth
}

// NewAdminController creates a new AdminController instance.
func NewAdminController(posts *store.Posts, mod *store.Moderation, auth *store.Auth) *AdminController {
	return &AdminController{posts: posts, mod: mod, auth: auth}
}

// Status summarizes moderation state for the admin dashboard.
func (a *AdminController) Status(ctx *gin.Context) {
	rctx := ctx.Request.Context()

	maintenance, err := a.auth.Maintenance(rctx)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	bans, err := a.mod.Bans(rctx)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	reports, err := a.mod.Reports(rctx)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}

	utils.OK(ctx, gin.H{
		"maintenance":  maintenance,
		"bannedCount":  len(bans),
		"reportsCount": len(reports),
	})
}

// Posts returns full post documents, owner addresses included.
func (a *AdminController) Posts(ctx *gin.Context) {
	posts, err := a.posts.ListFull(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

// DeletePost removes a post, its attachment blobs and its index entry.
func (a *AdminController) DeletePost(ctx *gin.Context) {
	ok, err := a.posts.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	if !ok {
		utils.Fail(ctx, http.StatusNotFound, "Not found")
		return
	}
	utils.OK(ctx, gin.H{"ok": true})
}

// PostDetails exposes the safety information the admin frontend expects for
// a post's author. Device fingerprinting is not collected; those fields stay
// stubbed.
func (a *AdminController) PostDetails(ctx *gin.Context) {
	a.authorDetails(ctx)
}

// CommentDetails serves the per-comment detail view. Comments carry no
// author metadata of their own, so this answers with the owning post's
// details; the comment id only addresses the route.
func (a *AdminController) CommentDetails(ctx *gin.Context) {
	a.authorDetails(ctx)
}

func (a *AdminController) authorDetails(ctx *gin.Context) {
	post, ok, err := a.posts.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	if !ok {
		utils.Fail(ctx, http.StatusNotFound, "Not found")
		return
	}

	var ip any
	if post.OwnerIP != "" {
		ip = post.OwnerIP
	}
	acceptLanguage := ctx.GetHeader("Accept-Language")
	if acceptLanguage == "" {
		acceptLanguage = "unknown"
	}

	utils.OK(ctx, gin.H{
		"ip":      ip,
		"device":  gin.H{"type": "unknown"},
		"browser": gin.H{"name": "unknown"},
		"os":      gin.H{"name": "unknown"},
		"network": gin.H{"acceptLanguage": acceptLanguage},
		"geo":     gin.H{},
	})
}

// Reports lists pending reports, newest first.
func (a *AdminController) Reports(ctx *gin.Context) {
	reports, err := a.mod.Reports(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	ctx.JSON(http.StatusOK, reports)
}

// IgnoreReport discards a report permanently.
func (a *AdminController) IgnoreReport(ctx *gin.Context) {
	if err := a.mod.IgnoreReport(ctx.Request.Context(), ctx.Param("id")); err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	utils.OK(ctx, gin.H{"ok": true})
}

// Bans returns the current ban list.
func (a *AdminController) Bans(ctx *gin.Context) {
	bans, err := a.mod.Bans(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	if bans == nil {
		bans = []string{}
	}
	utils.OK(ctx, gin.H{"banned": bans})
}

// Ban adds an address to the ban list.
func (a *AdminController) Ban(ctx *gin.Context) {
	a.updateBan(ctx, a.mod.Ban)
}

// Unban removes an address from the ban list.
func (a *AdminController) Unban(ctx *gin.Context) {
	a.updateBan(ctx, a.mod.Unban)
}

func (a *AdminController) updateBan(ctx *gin.Context, apply func(context.Context, string) error) {
	var req struct {
		IP string `json:"ip"`
	}
	_ = ctx.ShouldBindJSON(&req)

	ip := strings.TrimSpace(req.IP)
	if ip == "" {
		utils.Fail(ctx, http.StatusBadRequest, "Missing ip")
		return
	}
	if err := apply(ctx.Request.Context(), ip); err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	utils.OK(ctx, gin.H{"ok": true})
}

// SetMaintenance toggles the global write gate.
func (a *AdminController) SetMaintenance(ctx *gin.Context) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	_ = ctx.ShouldBindJSON(&req)

	if err := a.auth.SetMaintenance(ctx.Request.Context(), req.Enabled); err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "Server error")
		return
	}
	utils.OK(ctx, gin.H{"ok": true, "maintenance": req.Enabled})
}
