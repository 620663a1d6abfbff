package controllers

import (
	"net/http"

	"blogapp/middlewares"

	"github.com/gin-gonic/gin"
)

// LikeArticle POST /blog/:id/like，重复点赞是幂等空操作，同样返回 200
func LikeArticle(c *gin.Context) {
	id, ok := articleIDParam(c)
	if !ok {
		return
	}
	if err := interactionService.Like(c.Request.Context(), middlewares.ViewerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "liked"})
}

// UnlikeArticle DELETE /blog/:id/like，同样幂等
func UnlikeArticle(c *gin.Context) {
	id, ok := articleIDParam(c)
	if !ok {
		return
	}
	if err := interactionService.Unlike(c.Request.Context(), middlewares.ViewerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "unliked"})
}

// SaveArticle POST /blog/:id/save
func SaveArticle(c *gin.Context) {
	id, ok := articleIDParam(c)
	if !ok {
		return
	}
	if err := interactionService.SaveArticle(c.Request.Context(), middlewares.ViewerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "saved"})
}

// UnsaveArticle DELETE /blog/:id/save
func UnsaveArticle(c *gin.Context) {
	id, ok := articleIDParam(c)
	if !ok {
		return
	}
	if err := interactionService.UnsaveArticle(c.Request.Context(), middlewares.ViewerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "unsaved"})
}
