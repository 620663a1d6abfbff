package models

import "gorm.io/gorm"

// Save 收藏记录，结构同 Like
type Save struct {
	gorm.Model
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_article_save" json:"user_id"`
	ArticleID uint `gorm:"not null;index;uniqueIndex:idx_user_article_save" json:"article_id"`
}
