package services

import (
	"context"
	"strings"

	"blogapp/models"

	"gorm.io/gorm"
)

// 栏目分类表，建文章时标签必须从这里取；
// 传未知标签是调用方错误（400），不是系统故障
var allowedTags = map[string]struct{}{
	"managers":     {},
	"finance":      {},
	"opinion":      {},
	"health":       {},
	"innovation":   {},
	"agribusiness": {},
	"stocks":       {},
	"national":     {},
	"regional":     {},
	"africa":       {},
	"world":        {},
	"tech":         {},
}

// NormalizeTag 标签统一小写、去首尾空白
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func IsAllowedTag(name string) bool {
	_, ok := allowedTags[NormalizeTag(name)]
	return ok
}

func splitKeywords(q string) []string {
	return strings.Fields(q)
}

// ArticleInput 建文、改文的入参
type ArticleInput struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content"`
	Preview string   `json:"preview"`
	ImgURL  string   `json:"imgUrl"`
	Tags    []string `json:"tags"`
}

// ArticleService 文章的增删改。鉴权在进来之前已由 AuthService 做完
type ArticleService struct {
	db *gorm.DB
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{db: db}
}

// validateTags 归一化并校验标签，保持调用方给定的顺序
func validateTags(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := NormalizeTag(raw)
		if name == "" {
			continue
		}
		if _, ok := allowedTags[name]; !ok {
			return nil, ErrUnknownTag
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// attachTags 逐个建关联，article_tags.id 的递增顺序就是标签的展示顺序
func attachTags(tx *gorm.DB, articleID uint, names []string) error {
	for _, name := range names {
		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return err
		}
		link := models.ArticleTag{ArticleID: articleID, TagID: tag.ID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *ArticleService) Create(ctx context.Context, authorID uint, input ArticleInput) (*models.Article, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrEmptyTitle
	}
	tags, err := validateTags(input.Tags)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:    input.Title,
		Content:  input.Content,
		Preview:  input.Preview,
		ImgURL:   input.ImgURL,
		AuthorID: authorID,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		return attachTags(tx, article.ID, tags)
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Update 不改 AuthorID：文章归属创建后不可变更
func (s *ArticleService) Update(ctx context.Context, article *models.Article, input ArticleInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrEmptyTitle
	}
	tags, err := validateTags(input.Tags)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		article.Title = input.Title
		article.Content = input.Content
		article.Preview = input.Preview
		article.ImgURL = input.ImgURL
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		// 重打标签：旧关联清掉，按新顺序重建
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		return attachTags(tx, article.ID, tags)
	})
}

func (s *ArticleService) Delete(ctx context.Context, article *models.Article) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Save{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(article).Error
	})
}
