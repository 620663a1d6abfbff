package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogapp/models"
)

func TestRecordViewSynchronousFallback(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", "admin")
	article := createArticle(t, db, author.ID, "post", time.Now())

	// 无 RabbitMQ、无 Redis：事件直接落库
	svc := NewViewService(db, nil, nil, "")
	ctx := context.Background()

	if err := svc.RecordView(ctx, article.ID, 0); err != nil {
		t.Fatalf("匿名浏览记录出错: %v", err)
	}
	viewer := createUser(t, db, "viewer", "reader")
	if err := svc.RecordView(ctx, article.ID, viewer.ID); err != nil {
		t.Fatalf("登录浏览记录出错: %v", err)
	}

	var rows []models.View
	if err := db.Where("article_id = ?", article.ID).Order("id ASC").Find(&rows).Error; err != nil {
		t.Fatalf("读回浏览记录失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("浏览行数 = %d, want 2", len(rows))
	}
	if rows[0].UserID != 0 || rows[1].UserID != viewer.ID {
		t.Errorf("浏览者记录错误: %+v", rows)
	}
}

func TestRecordViewMissingArticle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewViewService(db, nil, nil, "")
	if err := svc.RecordView(context.Background(), 777, 0); !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("浏览不存在的文章应返回 ErrArticleNotFound, got %v", err)
	}
}

func TestHotViewCountDBFallback(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", "admin")
	article := createArticle(t, db, author.ID, "post", time.Now())

	svc := NewViewService(db, nil, nil, "")
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if err := svc.RecordView(ctx, article.ID, 0); err != nil {
			t.Fatalf("记录浏览失败: %v", err)
		}
	}

	count, err := svc.HotViewCount(ctx, article.ID)
	if err != nil {
		t.Fatalf("HotViewCount 出错: %v", err)
	}
	if count != 4 {
		t.Errorf("浏览计数 = %d, want 4", count)
	}
}
