package config

import (
	"log"

	"blogapp/global"

	amqp "github.com/rabbitmq/amqp091-go"
)

// initRabbit 初始化浏览事件队列。未配置时跳过，浏览记录走同步写库
func initRabbit() {
	url := AppConfig.RabbitMQ.Url
	if url == "" {
		log.Println("rabbitmq url empty, skipping rabbit init")
		return
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open RabbitMQ channel: %v", err)
	}

	qname := AppConfig.RabbitMQ.Queue
	if qname == "" {
		qname = "view.queue"
	}
	_, err = ch.QueueDeclare(qname, true, false, false, false, nil)
	if err != nil {
		log.Fatalf("Failed to declare RabbitMQ queue: %v", err)
	}

	global.RabbitConn = conn
	global.RabbitChannel = ch
	log.Println("RabbitMQ initialized, queue:", qname)
}
