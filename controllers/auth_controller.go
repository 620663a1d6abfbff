package controllers

import (
	"errors"
	"net/http"

	"blogapp/models"
	"blogapp/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册普通读者账号。admin 角色只能由独立的管理流程授予
func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}

	user := models.User{
		Username: req.Username,
		Password: hashed,
		Role:     models.RoleReader,
		Avatar:   req.Avatar,
		Bio:      req.Bio,
	}
	if err := dbHandle.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "username already taken"})
		return
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "registered", "token": token, "role": user.Role})
}

// Login 校验口令并签发凭证。响应里的 role 只用于前端展示，
// 服务端写路径永远重新查库判角色
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	var user models.User
	err := dbHandle.WithContext(c.Request.Context()).Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !utils.CheckPassword(req.Password, user.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "wrong username or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "login success", "token": token, "role": user.Role})
}
