package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/TimCalavera/calavera-web/internal/api/handlers"
	"github.com/TimCalavera/calavera-web/internal/api/middleware"
	"github.com/TimCalavera/calavera-web/internal/api/routes"
	"github.com/TimCalavera/calavera-web/internal/clients"
	"github.com/TimCalavera/calavera-web/internal/config"
	"github.com/TimCalavera/calavera-web/internal/repositories"
	"github.com/TimCalavera/calavera-web/internal/services"
	"github.com/TimCalavera/calavera-web/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	appConfig := config.LoadAppConfig()
	config.LogAPIKeyStatus()

	dbConfig := config.LoadDatabaseConfig()
	db, err := config.NewDatabaseWithRetry(dbConfig)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	uploads, err := storage.NewUploadStore(appConfig.UploadDir)
	if err != nil {
		log.Fatalf("❌ Upload directory setup failed: %v", err)
	}

	// Repositories
	adminRepo := repositories.NewMySQLAdminRepository(db)
	strukturRepo := repositories.NewMySQLStrukturRepository(db)
	jadwalRepo := repositories.NewMySQLJadwalRepository(db)
	piketRepo := repositories.NewMySQLPiketRepository(db)
	siswaRepo := repositories.NewMySQLSiswaRepository(db)
	galeriRepo := repositories.NewMySQLGaleriRepository(db)
	historyRepo := repositories.NewMemoryHistoryRepository()
	log.Printf("✅ MySQL repositories initialized")

	// AI clients
	chatClients := map[string]clients.ChatClient{
		"gemini":   clients.NewGeminiClient(),
		"groq":     clients.NewGroqClient(),
		"deepseek": clients.NewDeepSeekClient(),
		"mistral":  clients.NewMistralClient(),
	}
	searchClient := clients.NewLangSearchClient()
	log.Printf("🤖 AI clients initialized (Gemini, Groq, DeepSeek, Mistral)")

	// Services
	authService := services.NewAuthService(adminRepo)
	chatService := services.NewChatService(chatClients, searchClient, historyRepo, uploads)

	created, err := authService.EnsureDefaultAdmin(context.Background(), appConfig.AdminUsername, appConfig.AdminPassword)
	if err != nil {
		log.Fatalf("❌ Admin seed failed: %v", err)
	}
	if created {
		log.Printf("👤 Default admin account created: %s", appConfig.AdminUsername)
	}

	// Handlers
	sessions := middleware.NewSessionManager(appConfig.SessionSecret)
	renderer, err := handlers.NewRenderer(appConfig.TemplateDir)
	if err != nil {
		log.Fatalf("❌ Template parsing failed: %v", err)
	}

	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, sessions, renderer)
	siteHandler := handlers.NewSiteHandler(renderer, sessions, strukturRepo, jadwalRepo, piketRepo, siswaRepo, galeriRepo)
	adminHandler := handlers.NewAdminHandler(renderer, sessions, uploads, strukturRepo, jadwalRepo, piketRepo, siswaRepo, galeriRepo)
	chatHandler := handlers.NewChatHandler(chatService, sessions)

	router := routes.NewRouter(sessions, siteHandler, authHandler, adminHandler, chatHandler, healthHandler,
		appConfig.StaticDir, appConfig.UploadDir)

	log.Printf("🚀 Calavera web server starting on port %s", appConfig.Port)
	log.Printf("📋 Available endpoints:")
	log.Printf("  - GET  /")
	log.Printf("  - GET  /struktur")
	log.Printf("  - GET  /jadwal")
	log.Printf("  - GET  /galeri")
	log.Printf("  - GET  /siswa")
	log.Printf("  - GET  /calavera-ai")
	log.Printf("  - GET  /login")
	log.Printf("  - GET  /admin")
	log.Printf("  - POST /api/chat")
	log.Printf("  - POST /api/regenerate")
	log.Printf("  - POST /api/clear")
	log.Printf("  - POST /api/delete-message")
	log.Printf("  - GET  /health")

	if err := http.ListenAndServe(":"+appConfig.Port, router); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
