package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model
	ArticleID uint   `gorm:"index;not null" json:"article_id"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	Content   string `gorm:"type:text;not null" json:"content"`
}
