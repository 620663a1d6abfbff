package services

import (
	"context"
	"log"
	"time"

	"blogapp/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// FeedFilter 二选一：Tag 精确匹配（已归一化），Query 做标题/正文模糊检索
type FeedFilter struct {
	Tag   string
	Query string
}

type AuthorProfile struct {
	ImageURL string `json:"imageUrl"`
}

type AuthorInfo struct {
	ID      uint          `json:"id"`
	Name    string        `json:"name"`
	Profile AuthorProfile `json:"profile"`
}

// DecoratedArticle 信息流条目：文章本体 + 访问者相对状态 + 聚合计数
type DecoratedArticle struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Preview      string     `json:"preview"`
	ImgURL       string     `json:"imgUrl"`
	AuthorID     uint       `json:"authorId"`
	CreatedAt    time.Time  `json:"createdAt"`
	Author       AuthorInfo `json:"author"`
	Tags         []TagInfo  `json:"tags"`
	LikeCount    int64      `json:"likeCount"`
	CommentCount int64      `json:"commentCount"`
	ViewCount    int64      `json:"viewCount"`
	HasLiked     bool       `json:"hasLiked"`
	HasSaved     bool       `json:"hasSaved"`
	HasFollowed  bool       `json:"hasFollowed"`
	Himself      bool       `json:"himself"`
}

type FeedPage struct {
	Blogs     []DecoratedArticle `json:"blogs"`
	Page      int                `json:"page"`
	PageSize  int                `json:"pageSize"`
	TotalPage int                `json:"totalPage"`
	Total     int64              `json:"total"`
}

// FeedService 组装分页信息流：先取页内文章 id，
// 再并发跑社交状态和聚合两个批量解析器，合并出完整条目
type FeedService struct {
	db          *gorm.DB
	social      *SocialStateService
	agg         *AggregationService
	maxPageSize int
}

func NewFeedService(db *gorm.DB, social *SocialStateService, agg *AggregationService, maxPageSize int) *FeedService {
	return &FeedService{db: db, social: social, agg: agg, maxPageSize: maxPageSize}
}

// applyFilter 过滤在计数和分页之前生效，totalPage 反映过滤后的集合
func (s *FeedService) applyFilter(query *gorm.DB, filter FeedFilter) *gorm.DB {
	if filter.Tag != "" {
		sub := s.db.Table("article_tags").
			Select("article_tags.article_id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name = ?", NormalizeTag(filter.Tag))
		query = query.Where("articles.id IN (?)", sub)
	}
	if filter.Query != "" {
		// 与检索服务一致的关键词匹配：每个词都要命中标题或正文
		for _, kw := range splitKeywords(filter.Query) {
			query = query.Where("title LIKE ? OR content LIKE ?", "%"+kw+"%", "%"+kw+"%")
		}
	}
	return query
}

// GetPage 取一页信息流。viewerID 为 0 表示匿名，页内社交标志全 false。
// page < 1 安静地纠正为 1；pageSize 超上限被收紧；pageSize <= 0 是调用方错误。
// 超出总页数不算错误，返回空列表且 total 不变
func (s *FeedService) GetPage(ctx context.Context, viewerID uint, page, pageSize int, filter FeedFilter) (*FeedPage, error) {
	if pageSize <= 0 {
		return nil, ErrInvalidPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	if page < 1 {
		page = 1
	}

	var total int64
	countQuery := s.applyFilter(s.db.WithContext(ctx).Model(&models.Article{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}
	totalPage := int((total + int64(pageSize) - 1) / int64(pageSize))

	result := &FeedPage{
		Blogs:     []DecoratedArticle{},
		Page:      page,
		PageSize:  pageSize,
		TotalPage: totalPage,
		Total:     total,
	}
	if total == 0 || page > totalPage {
		return result, nil
	}

	// 排序确定：创建时间降序，同刻按 id 升序
	var articles []models.Article
	pageQuery := s.applyFilter(s.db.WithContext(ctx).Model(&models.Article{}), filter)
	err := pageQuery.
		Order("created_at DESC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}

	articleIDs := make([]uint, len(articles))
	authorSet := make(map[uint]struct{}, len(articles))
	for i, a := range articles {
		articleIDs[i] = a.ID
		authorSet[a.AuthorID] = struct{}{}
	}
	authorIDs := make([]uint, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	// 两个解析器互不依赖，并发执行；任何一个失败整页失败，
	// 不返回装饰了一半的结果
	var (
		socialStates map[uint]SocialState
		aggregates   map[uint]Aggregates
		authors      []models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		socialStates, err = s.social.Resolve(gctx, viewerID, articleIDs)
		return err
	})
	g.Go(func() error {
		var err error
		aggregates, err = s.agg.Resolve(gctx, articleIDs)
		return err
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Where("id IN ?", authorIDs).Find(&authors).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	authorByID := make(map[uint]models.User, len(authors))
	for _, u := range authors {
		authorByID[u.ID] = u
	}

	blogs := make([]DecoratedArticle, 0, len(articles))
	for _, a := range articles {
		state, ok := socialStates[a.ID]
		if !ok {
			log.Printf("feed: social state missing for article %d (page ids %v)", a.ID, articleIDs)
			return nil, ErrIncompleteResolution
		}
		agg, ok := aggregates[a.ID]
		if !ok {
			log.Printf("feed: aggregates missing for article %d (page ids %v)", a.ID, articleIDs)
			return nil, ErrIncompleteResolution
		}

		author := authorByID[a.AuthorID]
		blogs = append(blogs, DecoratedArticle{
			ID:        a.ID,
			Title:     a.Title,
			Content:   a.Content,
			Preview:   a.Preview,
			ImgURL:    a.ImgURL,
			AuthorID:  a.AuthorID,
			CreatedAt: a.CreatedAt,
			Author: AuthorInfo{
				ID:      author.ID,
				Name:    author.Username,
				Profile: AuthorProfile{ImageURL: author.Avatar},
			},
			Tags:         agg.Tags,
			LikeCount:    agg.LikeCount,
			CommentCount: agg.CommentCount,
			ViewCount:    agg.ViewCount,
			HasLiked:     state.HasLiked,
			HasSaved:     state.HasSaved,
			HasFollowed:  state.HasFollowed,
			Himself:      state.IsOwn,
		})
	}
	result.Blogs = blogs
	return result, nil
}
