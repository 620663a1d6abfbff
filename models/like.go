package models

import "gorm.io/gorm"

// Like 用户对文章的点赞记录，(user, article) 唯一，重复点赞为幂等空操作
type Like struct {
	gorm.Model
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_article_like" json:"user_id"`
	ArticleID uint `gorm:"not null;index;uniqueIndex:idx_user_article_like" json:"article_id"`
}
