package main

import (
	"github.com/SundayYogurt/intern_service/config"
	"github.com/SundayYogurt/intern_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
