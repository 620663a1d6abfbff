package models

import "time"

// Tag 标签名全小写、唯一
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// ArticleTag 文章-标签关联。自增 ID 保留打标顺序，
// 前端展示 "主要标签" 依赖这个顺序
type ArticleTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index;uniqueIndex:idx_article_tag" json:"article_id"`
	TagID     uint      `gorm:"uniqueIndex:idx_article_tag" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
