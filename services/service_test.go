package services

import (
	"testing"
	"time"

	"blogapp/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 创建测试数据库（SQLite 内存库）
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("无法创建测试数据库: %v", err)
	}
	// 内存库只能走单连接，多连接会各自拿到一个空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "x", Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

func createArticle(t *testing.T, db *gorm.DB, authorID uint, title string, createdAt time.Time) *models.Article {
	t.Helper()
	article := &models.Article{Title: title, Content: title + " content", AuthorID: authorID}
	article.CreatedAt = createdAt
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}
	return article
}

func likeArticle(t *testing.T, db *gorm.DB, userID, articleID uint, at time.Time) {
	t.Helper()
	like := &models.Like{UserID: userID, ArticleID: articleID}
	like.CreatedAt = at
	if err := db.Create(like).Error; err != nil {
		t.Fatalf("创建点赞失败: %v", err)
	}
}

// tagArticle 打标签并指定打标时间（热榜测试要控制事件时间）
func tagArticle(t *testing.T, db *gorm.DB, articleID uint, name string, at time.Time) {
	t.Helper()
	var tag models.Tag
	if err := db.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
		t.Fatalf("创建标签失败: %v", err)
	}
	link := &models.ArticleTag{ArticleID: articleID, TagID: tag.ID, CreatedAt: at}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("创建标签关联失败: %v", err)
	}
}
