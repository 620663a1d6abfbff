package services

import (
	"context"
	"testing"
	"time"
)

func TestSocialStateResolveCompleteMapping(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", "admin")
	viewer := createUser(t, db, "viewer", "reader")
	now := time.Now()

	liked := createArticle(t, db, author.ID, "liked", now)
	untouched := createArticle(t, db, author.ID, "untouched", now)
	own := createArticle(t, db, viewer.ID, "own", now)

	likeArticle(t, db, viewer.ID, liked.ID, now)

	svc := NewSocialStateService(db)
	ids := []uint{liked.ID, untouched.ID, own.ID}
	states, err := svc.Resolve(context.Background(), viewer.ID, ids)
	if err != nil {
		t.Fatalf("Resolve 出错: %v", err)
	}

	// 每个请求过的 id 都必须有条目
	for _, id := range ids {
		if _, ok := states[id]; !ok {
			t.Fatalf("映射缺少文章 %d", id)
		}
	}

	if !states[liked.ID].HasLiked {
		t.Error("liked 文章 HasLiked 应为 true")
	}
	if s := states[untouched.ID]; s.HasLiked || s.HasSaved || s.HasFollowed || s.IsOwn {
		t.Errorf("零互动文章应全 false: %+v", s)
	}
	if !states[own.ID].IsOwn {
		t.Error("自己的文章 IsOwn 应为 true")
	}
}

func TestSocialStateResolveAnonymous(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", "admin")
	reader := createUser(t, db, "reader", "reader")
	article := createArticle(t, db, author.ID, "post", time.Now())
	likeArticle(t, db, reader.ID, article.ID, time.Now())

	svc := NewSocialStateService(db)
	states, err := svc.Resolve(context.Background(), 0, []uint{article.ID})
	if err != nil {
		t.Fatalf("匿名 Resolve 不应出错: %v", err)
	}
	if s := states[article.ID]; s.HasLiked || s.HasSaved || s.HasFollowed || s.IsOwn {
		t.Errorf("匿名访问者所有标志应为 false: %+v", s)
	}
}

func TestSocialStateResolveFollowedAuthor(t *testing.T) {
	db := setupTestDB(t)
	followedAuthor := createUser(t, db, "followed", "admin")
	otherAuthor := createUser(t, db, "other", "admin")
	viewer := createUser(t, db, "viewer", "reader")
	now := time.Now()

	a := createArticle(t, db, followedAuthor.ID, "by-followed", now)
	b := createArticle(t, db, otherAuthor.ID, "by-other", now)

	if err := NewInteractionService(db).Follow(context.Background(), viewer.ID, followedAuthor.ID); err != nil {
		t.Fatalf("关注失败: %v", err)
	}

	states, err := NewSocialStateService(db).Resolve(context.Background(), viewer.ID, []uint{a.ID, b.ID})
	if err != nil {
		t.Fatalf("Resolve 出错: %v", err)
	}
	if !states[a.ID].HasFollowed {
		t.Error("已关注作者的文章 HasFollowed 应为 true")
	}
	if states[b.ID].HasFollowed {
		t.Error("未关注作者的文章 HasFollowed 应为 false")
	}
}

func TestSocialStateResolveEmptyIDs(t *testing.T) {
	db := setupTestDB(t)
	viewer := createUser(t, db, "viewer", "reader")

	states, err := NewSocialStateService(db).Resolve(context.Background(), viewer.ID, nil)
	if err != nil {
		t.Fatalf("空 id 集不应出错: %v", err)
	}
	if len(states) != 0 {
		t.Errorf("空 id 集应返回空映射, got %d 条", len(states))
	}
}
