package main

import (
	stdLog "log"
	"os"
	"time"

	"github.com/Astemirdum/rental-service/availability/app"
	"github.com/Astemirdum/rental-service/availability/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig(
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
