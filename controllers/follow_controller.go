package controllers

import (
	"net/http"
	"strconv"

	"blogapp/middlewares"

	"github.com/gin-gonic/gin"
)

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return 0, false
	}
	return uint(id), true
}

// FollowUser POST /user/:id/follow，关注自己是 400，重复关注幂等
func FollowUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := interactionService.Follow(c.Request.Context(), middlewares.ViewerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "followed"})
}

// UnfollowUser DELETE /user/:id/follow
func UnfollowUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := interactionService.Unfollow(c.Request.Context(), middlewares.ViewerID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "unfollowed"})
}
