package services

import (
	"context"
	"errors"

	"blogapp/models"

	"gorm.io/gorm"
)

// InteractionService 点赞/收藏/关注/评论。
// 加入类操作统一为幂等空操作：重复点赞不报错，状态不变
type InteractionService struct {
	db *gorm.DB
}

func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{db: db}
}

func (s *InteractionService) articleExists(ctx context.Context, articleID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", articleID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (s *InteractionService) Like(ctx context.Context, userID, articleID uint) error {
	if err := s.articleExists(ctx, articleID); err != nil {
		return err
	}
	like := models.Like{UserID: userID, ArticleID: articleID}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		FirstOrCreate(&like).Error
}

// Unlike 物理删除：软删行会占住 (user, article) 唯一索引，挡掉之后的再点赞
func (s *InteractionService) Unlike(ctx context.Context, userID, articleID uint) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Like{}).Error
}

func (s *InteractionService) SaveArticle(ctx context.Context, userID, articleID uint) error {
	if err := s.articleExists(ctx, articleID); err != nil {
		return err
	}
	save := models.Save{UserID: userID, ArticleID: articleID}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		FirstOrCreate(&save).Error
}

func (s *InteractionService) UnsaveArticle(ctx context.Context, userID, articleID uint) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Save{}).Error
}

func (s *InteractionService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", followeeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	follow := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	return s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		FirstOrCreate(&follow).Error
}

func (s *InteractionService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

func (s *InteractionService) AddComment(ctx context.Context, userID, articleID uint, content string) (*models.Comment, error) {
	if err := s.articleExists(ctx, articleID); err != nil {
		return nil, err
	}
	comment := &models.Comment{ArticleID: articleID, UserID: userID, Content: content}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *InteractionService) ListComments(ctx context.Context, articleID uint) ([]models.Comment, error) {
	if err := s.articleExists(ctx, articleID); err != nil {
		return nil, err
	}
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at DESC, id ASC").
		Find(&comments).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return comments, nil
}
