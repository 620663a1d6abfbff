package services

import (
	"context"

	"blogapp/models"

	"gorm.io/gorm"
)

// TagInfo 序列按打标顺序排列，前端把前几个当 "主要标签" 展示
type TagInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Aggregates 单篇文章的聚合计数与标签列表
type Aggregates struct {
	LikeCount    int64
	CommentCount int64
	ViewCount    int64
	Tags         []TagInfo
}

// AggregationService 对一组文章 id 做分组计数。
// 同 SocialStateService：每张关系表一条 GROUP BY，不随页大小放大
type AggregationService struct {
	db *gorm.DB
}

func NewAggregationService(db *gorm.DB) *AggregationService {
	return &AggregationService{db: db}
}

type countRow struct {
	ArticleID uint
	Cnt       int64
}

func (s *AggregationService) groupCount(ctx context.Context, model interface{}, articleIDs []uint) (map[uint]int64, error) {
	var rows []countRow
	err := s.db.WithContext(ctx).Model(model).
		Select("article_id, COUNT(*) as cnt").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.ArticleID] = r.Cnt
	}
	return counts, nil
}

// Resolve 零互动的文章也要有条目（计数 0、空标签），缺 key 视为契约破坏
func (s *AggregationService) Resolve(ctx context.Context, articleIDs []uint) (map[uint]Aggregates, error) {
	result := make(map[uint]Aggregates, len(articleIDs))
	for _, id := range articleIDs {
		result[id] = Aggregates{Tags: []TagInfo{}}
	}
	if len(articleIDs) == 0 {
		return result, nil
	}

	likeCounts, err := s.groupCount(ctx, &models.Like{}, articleIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.groupCount(ctx, &models.Comment{}, articleIDs)
	if err != nil {
		return nil, err
	}
	viewCounts, err := s.groupCount(ctx, &models.View{}, articleIDs)
	if err != nil {
		return nil, err
	}

	// 标签按 article_tags.id 升序，即打标（插入）顺序
	type tagRow struct {
		ArticleID uint
		TagID     uint
		Name      string
	}
	var tagRows []tagRow
	err = s.db.WithContext(ctx).Table("article_tags").
		Select("article_tags.article_id, tags.id as tag_id, tags.name").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("article_tags.article_id IN ?", articleIDs).
		Order("article_tags.id ASC").
		Scan(&tagRows).Error
	if err != nil {
		return nil, err
	}

	for _, id := range articleIDs {
		agg := result[id]
		agg.LikeCount = likeCounts[id]
		agg.CommentCount = commentCounts[id]
		agg.ViewCount = viewCounts[id]
		result[id] = agg
	}
	for _, r := range tagRows {
		agg := result[r.ArticleID]
		agg.Tags = append(agg.Tags, TagInfo{ID: r.TagID, Name: r.Name})
		result[r.ArticleID] = agg
	}
	return result, nil
}
