package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP resolves the caller address the way the board records it:
// CDN header first, then the forwarded chain, then the socket peer.
func ClientIP(ctx *gin.Context) string {
	if ip := ctx.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if fwd := ctx.GetHeader("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	if ip := ctx.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
