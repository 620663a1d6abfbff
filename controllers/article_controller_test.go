package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"blogapp/config"
	"blogapp/middlewares"
	"blogapp/models"
	"blogapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Jwt.Secret = "test-secret"
	cfg.Jwt.ExpireHours = 1
	cfg.Feed.DefaultPageSize = 10
	cfg.Feed.MaxPageSize = 50
	cfg.Trending.WindowDays = 7
	cfg.Trending.HalfLifeHours = 48
	cfg.Trending.RefreshMinutes = 5
	cfg.Trending.TopN = 10
	config.AppConfig = cfg

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
	Init(db, nil, nil)

	r := gin.New()
	r.GET("/api/v1/blog/bulk", middlewares.OptionalAuthMiddleware(), GetFeed)
	authed := r.Group("/api/v1/blog", middlewares.AuthMiddleware())
	{
		authed.POST("", CreateArticle)
		authed.PUT("/:id", UpdateArticle)
		authed.DELETE("/:id", DeleteArticle)
	}
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) (*models.User, string) {
	t.Helper()
	user := &models.User{Username: name, Password: "x", Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		t.Fatalf("签发 token 失败: %v", err)
	}
	return user, token
}

func seedArticle(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Article {
	t.Helper()
	article := &models.Article{Title: title, AuthorID: authorID}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}
	return article
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDeleteArticleAuthorization(t *testing.T) {
	r, db := setupTestApp(t)
	owner, ownerToken := seedUser(t, db, "owner", models.RoleReader)
	_, strangerToken := seedUser(t, db, "stranger", models.RoleReader)
	_, adminToken := seedUser(t, db, "admin", models.RoleAdmin)

	t.Run("无凭证 401", func(t *testing.T) {
		article := seedArticle(t, db, owner.ID, "p1")
		w := do(r, http.MethodDelete, "/api/v1/blog/"+itoa(article.ID), "", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("读者删他人文章 403", func(t *testing.T) {
		article := seedArticle(t, db, owner.ID, "p2")
		w := do(r, http.MethodDelete, "/api/v1/blog/"+itoa(article.ID), strangerToken, "")
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
		if !strings.Contains(w.Body.String(), "not the author") {
			t.Errorf("应返回非作者原因: %s", w.Body.String())
		}
	})

	t.Run("作者删自己的文章 200", func(t *testing.T) {
		article := seedArticle(t, db, owner.ID, "p3")
		w := do(r, http.MethodDelete, "/api/v1/blog/"+itoa(article.ID), ownerToken, "")
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
	})

	t.Run("admin 删任意文章 200", func(t *testing.T) {
		article := seedArticle(t, db, owner.ID, "p4")
		w := do(r, http.MethodDelete, "/api/v1/blog/"+itoa(article.ID), adminToken, "")
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
	})

	t.Run("删不存在的文章 404", func(t *testing.T) {
		w := do(r, http.MethodDelete, "/api/v1/blog/99999", adminToken, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestCreateArticleAuthorization(t *testing.T) {
	r, db := setupTestApp(t)
	_, readerToken := seedUser(t, db, "reader", models.RoleReader)
	_, adminToken := seedUser(t, db, "admin", models.RoleAdmin)

	t.Run("读者建文 403", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/blog", readerToken, `{"title":"t","tags":["tech"]}`)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403: %s", w.Code, w.Body.String())
		}
	})

	t.Run("admin 建文 201", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/blog", adminToken, `{"title":"t","tags":["tech"]}`)
		if w.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201: %s", w.Code, w.Body.String())
		}
	})

	t.Run("未知标签 400", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/blog", adminToken, `{"title":"t","tags":["dogecoin"]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
		}
	})
}

func TestFeedEndpointAnonymous(t *testing.T) {
	r, db := setupTestApp(t)
	admin, _ := seedUser(t, db, "admin", models.RoleAdmin)
	seedArticle(t, db, admin.ID, "visible")

	w := do(r, http.MethodGet, "/api/v1/blog/bulk", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("匿名拉取信息流应 200: %d %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, field := range []string{`"blogs"`, `"totalPage"`, `"total"`, `"hasLiked"`, `"himself"`} {
		if !strings.Contains(body, field) {
			t.Errorf("响应缺少字段 %s: %s", field, body)
		}
	}
}

func TestFeedEndpointBadPageSize(t *testing.T) {
	r, _ := setupTestApp(t)
	w := do(r, http.MethodGet, "/api/v1/blog/bulk?pageSize=0", "", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("pageSize=0 应 400, got %d", w.Code)
	}
}
