package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"blogapp/models"

	"github.com/go-redis/redis"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

// ViewEvent 队列里的浏览事件消息体
type ViewEvent struct {
	ArticleID uint      `json:"article_id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ViewService 记录浏览事件。配置了 RabbitMQ 时异步投递、
// 由消费者落库；否则同步写 views 表。Redis 侧维护一份热计数镜像
type ViewService struct {
	db    *gorm.DB
	rdb   *redis.Client
	ch    *amqp.Channel
	queue string
}

func NewViewService(db *gorm.DB, rdb *redis.Client, ch *amqp.Channel, queue string) *ViewService {
	if queue == "" {
		queue = "view.queue"
	}
	return &ViewService{db: db, rdb: rdb, ch: ch, queue: queue}
}

func viewCountKey(articleID uint) string {
	return "article:" + strconv.FormatUint(uint64(articleID), 10) + ":views"
}

// RecordView 登记一次浏览，viewerID 为 0 表示匿名
func (s *ViewService) RecordView(ctx context.Context, articleID, viewerID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", articleID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrArticleNotFound
	}

	event := ViewEvent{ArticleID: articleID, UserID: viewerID, CreatedAt: time.Now()}

	if s.ch != nil {
		body, err := json.Marshal(event)
		if err != nil {
			return err
		}
		err = s.ch.PublishWithContext(ctx, "", s.queue, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
		if err != nil {
			// 队列不可用时退回同步写库，浏览事件不能丢
			log.Println("view: publish failed, falling back to db:", err)
			if err := s.insert(ctx, event); err != nil {
				return err
			}
		}
	} else {
		if err := s.insert(ctx, event); err != nil {
			return err
		}
	}

	if s.rdb != nil {
		if err := s.rdb.Incr(viewCountKey(articleID)).Err(); err != nil {
			log.Println("view: redis incr failed:", err)
		}
	}
	return nil
}

func (s *ViewService) insert(ctx context.Context, event ViewEvent) error {
	row := models.View{
		ArticleID: event.ArticleID,
		UserID:    event.UserID,
		CreatedAt: event.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// HotViewCount 读 Redis 热计数，未配置或无记录时回退数据库
func (s *ViewService) HotViewCount(ctx context.Context, articleID uint) (int64, error) {
	if s.rdb != nil {
		val, err := s.rdb.Get(viewCountKey(articleID)).Result()
		if err == nil {
			return strconv.ParseInt(val, 10, 64)
		}
		if err != redis.Nil {
			return 0, err
		}
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.View{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}

// StartConsumer 消费浏览事件队列并落库。随进程退出，不做重启策略
func (s *ViewService) StartConsumer() error {
	if s.ch == nil {
		return nil
	}
	deliveries, err := s.ch.Consume(s.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}
	go func() {
		for d := range deliveries {
			var event ViewEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				log.Println("view consumer: bad message:", err)
				_ = d.Nack(false, false)
				continue
			}
			if err := s.insert(context.Background(), event); err != nil {
				log.Println("view consumer: insert failed:", err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}()
	return nil
}
