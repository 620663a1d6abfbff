package controllers

import (
	"errors"
	"net/http"
	"time"

	"blogapp/config"
	"blogapp/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

var (
	dbHandle           *gorm.DB
	authService        *services.AuthService
	articleService     *services.ArticleService
	feedService        *services.FeedService
	interactionService *services.InteractionService
	trendingService    *services.TrendingService
	viewService        *services.ViewService
)

// Init 按配置把各 service 装配到包级变量，main 和测试都从这里进
func Init(db *gorm.DB, rdb *redis.Client, ch *amqp.Channel) {
	cfg := config.AppConfig
	dbHandle = db

	social := services.NewSocialStateService(db)
	agg := services.NewAggregationService(db)

	authService = services.NewAuthService(db)
	articleService = services.NewArticleService(db)
	feedService = services.NewFeedService(db, social, agg, cfg.Feed.MaxPageSize)
	interactionService = services.NewInteractionService(db)
	trendingService = services.NewTrendingService(
		db, rdb,
		time.Duration(cfg.Trending.WindowDays)*24*time.Hour,
		time.Duration(cfg.Trending.HalfLifeHours)*time.Hour,
		cfg.Trending.TopN,
	)
	viewService = services.NewViewService(db, rdb, ch, cfg.RabbitMQ.Queue)
}

// StartBackground 启动热榜定时刷新和浏览事件消费者
func StartBackground() error {
	trendingService.Start(time.Duration(config.AppConfig.Trending.RefreshMinutes) * time.Minute)
	return viewService.StartConsumer()
}

// respondError 错误分类到状态码的统一出口
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrArticleNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, services.ErrNotAdmin):
		c.JSON(http.StatusForbidden, gin.H{"msg": "Forbidden - Admin access required. Only admins can create or edit blogs."})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"msg": "Forbidden - You are not the author of this blog."})
	case errors.Is(err, services.ErrInvalidPageSize),
		errors.Is(err, services.ErrUnknownTag),
		errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrEmptyTitle):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}
