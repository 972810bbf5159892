package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomcare/internal/api"
	"roomcare/internal/catalog"
	"roomcare/internal/config"
	"roomcare/internal/dispatch"
	"roomcare/internal/health"
	"roomcare/internal/qr"
	"roomcare/internal/sheets"
	"roomcare/internal/telegram"
	"roomcare/internal/translate"
)

func main() {
	log.Println("🚀 Starting roomcare service...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Println("✓ Configuration loaded")

	ctx := context.Background()

	log.Println("📨 Initializing Telegram sink...")
	chat := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.HTTPTimeout, cfg.DebugMode)

	translator, err := translate.NewTranslator(ctx, cfg.TranslateAPIKey)
	if err != nil {
		log.Printf("⚠️  Translation init failed, alerts keep original text: %v", err)
	} else if translator != nil {
		chat.SetTranslator(translator)
		defer translator.Close()
	}

	log.Println("📋 Initializing Google Sheets sink...")
	ledger := sheets.NewClient(cfg.GoogleCredentialsFile, cfg.GoogleSheetID, cfg.HTTPTimeout, cfg.DebugMode)

	rooms := catalog.New()
	dispatcher := dispatch.New(cfg.SinkTimeout, rooms.Lookup, chat, ledger)
	encoder := qr.NewEncoder(cfg.BaseURL)
	monitor := health.NewMonitor()

	router := api.SetupRoutes(api.NewHandlers(dispatcher, rooms, encoder, monitor))

	srv := &http.Server{
		Addr:    ":" + cfg.ListenPort,
		Handler: router,
	}

	go func() {
		log.Printf("✓ HTTP server listening on :%s", cfg.ListenPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ HTTP server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Shutdown error: %v", err)
	}
	log.Println("✓ Server stopped")
}
