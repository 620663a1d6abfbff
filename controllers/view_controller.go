package controllers

import (
	"net/http"

	"blogapp/middlewares"

	"github.com/gin-gonic/gin"
)

// RecordView POST /blog/:id/view，匿名也计数
func RecordView(c *gin.Context) {
	id, ok := articleIDParam(c)
	if !ok {
		return
	}
	if err := viewService.RecordView(c.Request.Context(), id, middlewares.ViewerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "view recorded"})
}

// GetArticleViews GET /blog/:id/views，优先读 Redis 热计数
func GetArticleViews(c *gin.Context) {
	id, ok := articleIDParam(c)
	if !ok {
		return
	}
	count, err := viewService.HotViewCount(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"views": count})
}
