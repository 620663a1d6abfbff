package models

import "gorm.io/gorm"

// Article 文章，AuthorID 创建后不可变更
type Article struct {
	gorm.Model
	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text" json:"content"`
	Preview  string `json:"preview"`
	ImgURL   string `json:"imgUrl"`
	AuthorID uint   `gorm:"index;not null" json:"authorId"`
}
