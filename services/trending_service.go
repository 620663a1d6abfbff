package services

import (
	"context"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis"
	"gorm.io/gorm"
)

const trendingRankKey = "rank:tags:trending"

// TagScore 热榜条目
type TagScore struct {
	Tag   string  `json:"name"`
	Score float64 `json:"score"`

	rawCount  int64
	lastEvent time.Time
}

// TrendingService 维护按时间衰减打分的热门标签榜。
//
// 打分模型：窗口（默认 7 天）内每个合格事件——打标、点赞、浏览——
// 贡献 0.5^(age/halfLife)，半衰期默认 48 小时，窗口外事件贡献 0。
// 并列时依次按原始事件数、最近事件时间、标签字典序决出，排序完全确定。
//
// 刷新策略：后台按固定间隔（默认 5 分钟，即最大陈旧度）重算，
// 读方拿到的是整体换入的快照，不会读到半新半旧的榜单
type TrendingService struct {
	db       *gorm.DB
	rdb      *redis.Client
	window   time.Duration
	halfLife time.Duration
	topN     int

	mu       sync.RWMutex
	snapshot []TagScore

	stop chan struct{}
	once sync.Once
}

func NewTrendingService(db *gorm.DB, rdb *redis.Client, window, halfLife time.Duration, topN int) *TrendingService {
	return &TrendingService{
		db:       db,
		rdb:      rdb,
		window:   window,
		halfLife: halfLife,
		topN:     topN,
		stop:     make(chan struct{}),
	}
}

type tagEvent struct {
	Name      string
	CreatedAt time.Time
}

func (s *TrendingService) decay(age time.Duration) float64 {
	return math.Pow(0.5, age.Hours()/s.halfLife.Hours())
}

// Refresh 立即重算并换入新快照
func (s *TrendingService) Refresh(ctx context.Context) error {
	now := time.Now()
	since := now.Add(-s.window)
	db := s.db.WithContext(ctx)

	// 打标事件
	var tagRows []tagEvent
	err := db.Table("article_tags").
		Select("tags.name, article_tags.created_at").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("article_tags.created_at >= ?", since).
		Scan(&tagRows).Error
	if err != nil {
		return err
	}

	// 点赞事件，归到被赞文章的标签上
	var likeRows []tagEvent
	err = db.Table("likes").
		Select("tags.name, likes.created_at").
		Joins("JOIN article_tags ON article_tags.article_id = likes.article_id").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("likes.created_at >= ? AND likes.deleted_at IS NULL", since).
		Scan(&likeRows).Error
	if err != nil {
		return err
	}

	// 浏览事件
	var viewRows []tagEvent
	err = db.Table("views").
		Select("tags.name, views.created_at").
		Joins("JOIN article_tags ON article_tags.article_id = views.article_id").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("views.created_at >= ?", since).
		Scan(&viewRows).Error
	if err != nil {
		return err
	}

	events := make([]tagEvent, 0, len(tagRows)+len(likeRows)+len(viewRows))
	events = append(events, tagRows...)
	events = append(events, likeRows...)
	events = append(events, viewRows...)

	acc := make(map[string]*TagScore)
	for _, ev := range events {
		age := now.Sub(ev.CreatedAt)
		if age < 0 {
			age = 0
		}
		entry, ok := acc[ev.Name]
		if !ok {
			entry = &TagScore{Tag: ev.Name}
			acc[ev.Name] = entry
		}
		entry.Score += s.decay(age)
		entry.rawCount++
		if ev.CreatedAt.After(entry.lastEvent) {
			entry.lastEvent = ev.CreatedAt
		}
	}

	ranked := make([]TagScore, 0, len(acc))
	for _, entry := range acc {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.rawCount != b.rawCount {
			return a.rawCount > b.rawCount
		}
		if !a.lastEvent.Equal(b.lastEvent) {
			return a.lastEvent.After(b.lastEvent)
		}
		return a.Tag < b.Tag
	})
	if s.topN > 0 && len(ranked) > s.topN {
		ranked = ranked[:s.topN]
	}

	s.mu.Lock()
	s.snapshot = ranked
	s.mu.Unlock()

	s.mirrorToRedis(ranked)
	return nil
}

// mirrorToRedis 把榜单镜像到 ZSET，供其他进程读。失败只记日志不影响本地快照
func (s *TrendingService) mirrorToRedis(ranked []TagScore) {
	if s.rdb == nil {
		return
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(trendingRankKey)
	for _, t := range ranked {
		pipe.ZAdd(trendingRankKey, redis.Z{Score: t.Score, Member: t.Tag})
	}
	if _, err := pipe.Exec(); err != nil {
		log.Println("trending: redis mirror failed:", err)
	}
}

// Rank 返回最近一次计算的榜单快照
func (s *TrendingService) Rank() []TagScore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TagScore, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Start 启动后台定时刷新。interval 同时是榜单的最大陈旧度
func (s *TrendingService) Start(interval time.Duration) {
	if err := s.Refresh(context.Background()); err != nil {
		log.Println("trending: initial refresh failed:", err)
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.Refresh(context.Background()); err != nil {
					log.Println("trending: refresh failed:", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *TrendingService) Stop() {
	s.once.Do(func() { close(s.stop) })
}
