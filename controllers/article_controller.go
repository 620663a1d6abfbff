package controllers

import (
	"net/http"
	"strconv"

	"blogapp/middlewares"
	"blogapp/services"

	"github.com/gin-gonic/gin"
)

func articleIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid article id"})
		return 0, false
	}
	return uint(id), true
}

// CreateArticle 仅 admin。身份已由 AuthMiddleware 核验，
// 这里每次重新查库拿角色，不信任任何调用方自带的角色声明
func CreateArticle(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := authService.ResolveIdentity(ctx, middlewares.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authService.AuthorizeMutation(user, services.ActionCreate, nil); err != nil {
		respondError(c, err)
		return
	}

	var input services.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	article, err := articleService.Create(ctx, user.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "blog created", "id": article.ID})
}

// UpdateArticle 作者本人或 admin
func UpdateArticle(c *gin.Context) {
	id, ok := articleIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := authService.ResolveIdentity(ctx, middlewares.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	article, err := authService.LoadArticle(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authService.AuthorizeMutation(user, services.ActionEdit, article); err != nil {
		respondError(c, err)
		return
	}

	var input services.ArticleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := articleService.Update(ctx, article, input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "blog updated", "id": article.ID})
}

// DeleteArticle 作者本人或 admin
func DeleteArticle(c *gin.Context) {
	id, ok := articleIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := authService.ResolveIdentity(ctx, middlewares.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	article, err := authService.LoadArticle(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := authService.AuthorizeMutation(user, services.ActionDelete, article); err != nil {
		respondError(c, err)
		return
	}

	if err := articleService.Delete(ctx, article); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "blog deleted"})
}
