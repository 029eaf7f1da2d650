package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"reportbot/backend/internal/api/handler"
	"reportbot/backend/internal/bot"
	"reportbot/backend/internal/localization"
	"reportbot/backend/internal/report"
	"reportbot/backend/internal/storage"
)

func main() {
	log.Println("Starting report bot...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	token := os.Getenv("DISCORD_BOT_TOKEN")
	if token == "" {
		log.Fatal("DISCORD_BOT_TOKEN is not set!")
	}

	// 1. Report store and business services
	store, err := storage.NewService(envOr("REPORTS_FILE", "data/reports.json"))
	if err != nil {
		log.Fatalf("Failed to open report store: %v", err)
	}
	localizer, err := localization.NewLocalizer()
	if err != nil {
		log.Fatalf("Failed to load localization: %v", err)
	}
	reportSvc := report.NewService(store)

	// 2. Discord gateway
	botSvc, err := bot.NewService(token, reportSvc, localizer, bot.Options{
		Prefix: envOr("BOT_PREFIX", "!"),
		Lang:   envOr("BOT_LANG", "es"),
	})
	if err != nil {
		log.Fatalf("Failed to create bot service: %v", err)
	}
	if err := botSvc.Run(); err != nil {
		log.Fatalf("Failed to connect to Discord: %v", err)
	}
	defer botSvc.Close()

	// 3. Operational HTTP surface
	r := gin.Default()
	h := handler.NewHandler(store, os.Getenv("ADMIN_API_SECRET"), os.Getenv("JWT_SECRET"))
	h.Register(r)

	server := &http.Server{
		Addr:           envOr("HTTP_ADDR", ":8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	log.Fatal(server.ListenAndServe())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
