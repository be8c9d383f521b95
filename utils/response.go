package utils

import "github.com/gin-gonic/gin"

// Fail writes the flat {"error": message} body the board frontend expects.
func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

// OK writes a 200 response with the given payload.
func OK(ctx *gin.Context, payload gin.H) {
	ctx.JSON(200, payload)
}
