package services

import (
	"context"
	"errors"

	"blogapp/models"

	"gorm.io/gorm"
)

// 写操作动作。Create 只看角色，Edit/Delete 额外放行作者本人
const (
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// AuthService 负责把已验证的身份解析成授权决策。
// 每个写请求都要走一遍完整流程：角色可能随时被改，绝不跨请求缓存
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// ResolveIdentity 按 token 主体 id 查用户。
// 用户已删除（凭证吊销场景）返回 ErrUserNotFound
func (s *AuthService) ResolveIdentity(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthorizeMutation 判定 user 是否可以对 article 执行 action。
// 规则：admin 放行一切；edit/delete 放行文章作者；其余拒绝。
// 拒绝原因可区分（ErrNotAdmin / ErrNotOwner），controllers 据此回 403
func (s *AuthService) AuthorizeMutation(user *models.User, action string, article *models.Article) error {
	if user.IsAdmin() {
		return nil
	}
	switch action {
	case ActionEdit, ActionDelete:
		if article != nil && article.AuthorID == user.ID {
			return nil
		}
		return ErrNotOwner
	default:
		return ErrNotAdmin
	}
}

// LoadArticle 供写路径取鉴权目标，缺失时返回 ErrArticleNotFound（404）
func (s *AuthService) LoadArticle(ctx context.Context, articleID uint) (*models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).First(&article, articleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}
