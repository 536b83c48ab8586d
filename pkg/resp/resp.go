package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}

// Conflict carries a machine-readable kind alongside the user-facing message,
// used for business-rule failures (zone, promo, transition, precondition).
func Conflict(c *gin.Context, kind, msg string) {
	c.JSON(http.StatusConflict, gin.H{"ok": false, "kind": kind, "error": msg})
}
func UnprocessableEntity(c *gin.Context, kind, msg string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "kind": kind, "error": msg})
}
func BadGateway(c *gin.Context, msg string) {
	c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": msg})
}
func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}
