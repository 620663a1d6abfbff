package main

import (
	"log"

	"blogapp/config"
	"blogapp/controllers"
	"blogapp/global"
	"blogapp/router"
)

func main() {
	config.InitConfig()

	controllers.Init(global.Db, global.RedisDB, global.RabbitChannel)
	if err := controllers.StartBackground(); err != nil {
		log.Fatalf("Failed to start background workers: %v", err)
	}

	r := router.SetupRouter()

	port := config.AppConfig.App.Port
	if port == "" {
		port = ":3000"
	}
	log.Println("listening on", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
