package models

import "gorm.io/gorm"

// AutoMigrate 建表，启动和测试共用
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Article{},
		&Tag{},
		&ArticleTag{},
		&Like{},
		&Save{},
		&Follow{},
		&Comment{},
		&View{},
	)
}
