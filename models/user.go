package models

import "gorm.io/gorm"

const (
	RoleReader = "reader"
	RoleAdmin  = "admin"
)

// User 用户，Role 决定写操作权限（admin 才能发布文章）
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"default:reader" json:"role"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
