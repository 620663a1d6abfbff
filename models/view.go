package models

import "time"

// View 浏览事件，只追加不修改。UserID 为 0 表示匿名访问。
// 既是阅读量的计数来源，也是热榜衰减打分的原始信号
type View struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index;not null" json:"article_id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
