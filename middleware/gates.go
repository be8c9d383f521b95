package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kvboard/store"
	"kvboard/utils"
)

// AdminTokenHeader carries the opaque admin session token.
const AdminTokenHeader = "x-admin-token"

func isAdminRequest(ctx *gin.Context, auth *store.Auth) bool {
	ok, err := auth.IsAdmin(ctx.Request.Context(), ctx.GetHeader(AdminTokenHeader))
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("admin token lookup failed: %v", err)
		}
		return false
	}
	return ok
}

// MaintenanceGate blocks public writes while maintenance mode is on.
// Authenticated admins pass through.
func MaintenanceGate(auth *store.Auth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		on, err := auth.Maintenance(ctx.Request.Context())
		if err != nil {
			utils.Fail(ctx, http.StatusInternalServerError, "Server error")
			ctx.Abort()
			return
		}
		if on && !isAdminRequest(ctx, auth) {
			utils.Fail(ctx, http.StatusForbidden, "Maintenance mode")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// BanGate blocks banned addresses from submitting content. Authenticated
// admins bypass the ban list.
func BanGate(auth *store.Auth, mod *store.Moderation) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		banned, err := mod.IsBanned(ctx.Request.Context(), utils.ClientIP(ctx))
		if err != nil {
			utils.Fail(ctx, http.StatusInternalServerError, "Server error")
			ctx.Abort()
			return
		}
		if banned && !isAdminRequest(ctx, auth) {
			utils.Fail(ctx, http.StatusForbidden, "You are banned")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// AdminRequired guards the moderation API behind a live admin token.
func AdminRequired(auth *store.Auth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !isAdminRequest(ctx, auth) {
			utils.Fail(ctx, http.StatusForbidden, "Admin only")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
