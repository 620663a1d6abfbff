package services

import "errors"

// 错误分类与 HTTP 状态码的对应关系由 controllers 统一映射：
// 认证类 401，权限类 403，缺失类 404，参数类 400，其余 500
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrArticleNotFound = errors.New("article not found")

	ErrNotAdmin = errors.New("forbidden: admin role required")
	ErrNotOwner = errors.New("forbidden: not the author of this article")

	ErrInvalidPageSize = errors.New("pageSize must be greater than 0")
	ErrUnknownTag      = errors.New("tag is not in the allowed category list")
	ErrSelfFollow      = errors.New("cannot follow yourself")
	ErrEmptyTitle      = errors.New("title must not be empty")

	// ErrIncompleteResolution 表示批量解析器返回的映射缺少请求过的文章 id，
	// 属于内部一致性被破坏，整页请求失败并记日志，绝不静默补默认值
	ErrIncompleteResolution = errors.New("resolver returned incomplete mapping")
)
