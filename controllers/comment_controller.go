package controllers

import (
	"net/http"

	"blogapp/middlewares"

	"github.com/gin-gonic/gin"
)

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment POST /blog/:id/comments
func CreateComment(c *gin.Context) {
	id, ok := articleIDParam(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	comment, err := interactionService.AddComment(c.Request.Context(), middlewares.ViewerID(c), id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "comment created", "id": comment.ID})
}

// GetComments GET /blog/:id/comments
func GetComments(c *gin.Context) {
	id, ok := articleIDParam(c)
	if !ok {
		return
	}
	comments, err := interactionService.ListComments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "comments fetched", "comments": comments})
}
