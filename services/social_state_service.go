package services

import (
	"context"

	"blogapp/models"

	"gorm.io/gorm"
)

// SocialState 单篇文章相对当前访问者的社交状态
type SocialState struct {
	HasLiked    bool
	HasSaved    bool
	HasFollowed bool
	IsOwn       bool
}

// SocialStateService 批量计算访问者相对状态。
// 每类关系只发一条 IN 查询，查询量与页大小无关，
// 禁止退化成逐篇循环查询
type SocialStateService struct {
	db *gorm.DB
}

func NewSocialStateService(db *gorm.DB) *SocialStateService {
	return &SocialStateService{db: db}
}

// Resolve 返回的映射覆盖每一个请求的 articleID，零互动也有全 false 条目。
// viewerID 为 0（匿名）时不查任何关系表，直接全 false
func (s *SocialStateService) Resolve(ctx context.Context, viewerID uint, articleIDs []uint) (map[uint]SocialState, error) {
	result := make(map[uint]SocialState, len(articleIDs))
	for _, id := range articleIDs {
		result[id] = SocialState{}
	}
	if viewerID == 0 || len(articleIDs) == 0 {
		return result, nil
	}

	db := s.db.WithContext(ctx)

	// 文章 → 作者，一条查询拿齐，isOwn 和 hasFollowed 都要用
	type authorRow struct {
		ID       uint
		AuthorID uint
	}
	var authorRows []authorRow
	if err := db.Model(&models.Article{}).
		Select("id, author_id").
		Where("id IN ?", articleIDs).
		Scan(&authorRows).Error; err != nil {
		return nil, err
	}
	authorOf := make(map[uint]uint, len(authorRows))
	authorSet := make(map[uint]struct{}, len(authorRows))
	for _, r := range authorRows {
		authorOf[r.ID] = r.AuthorID
		authorSet[r.AuthorID] = struct{}{}
	}

	var likedIDs []uint
	if err := db.Model(&models.Like{}).
		Where("user_id = ? AND article_id IN ?", viewerID, articleIDs).
		Pluck("article_id", &likedIDs).Error; err != nil {
		return nil, err
	}

	var savedIDs []uint
	if err := db.Model(&models.Save{}).
		Where("user_id = ? AND article_id IN ?", viewerID, articleIDs).
		Pluck("article_id", &savedIDs).Error; err != nil {
		return nil, err
	}

	authorIDs := make([]uint, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}
	var followedAuthors []uint
	if len(authorIDs) > 0 {
		if err := db.Model(&models.Follow{}).
			Where("follower_id = ? AND followee_id IN ?", viewerID, authorIDs).
			Pluck("followee_id", &followedAuthors).Error; err != nil {
			return nil, err
		}
	}
	followed := make(map[uint]struct{}, len(followedAuthors))
	for _, id := range followedAuthors {
		followed[id] = struct{}{}
	}

	likedSet := make(map[uint]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = struct{}{}
	}
	savedSet := make(map[uint]struct{}, len(savedIDs))
	for _, id := range savedIDs {
		savedSet[id] = struct{}{}
	}

	for _, id := range articleIDs {
		state := SocialState{}
		if _, ok := likedSet[id]; ok {
			state.HasLiked = true
		}
		if _, ok := savedSet[id]; ok {
			state.HasSaved = true
		}
		if author, ok := authorOf[id]; ok {
			state.IsOwn = author == viewerID
			if _, ok := followed[author]; ok {
				state.HasFollowed = true
			}
		}
		result[id] = state
	}
	return result, nil
}
