package config

import (
	"log"
	"os"
)

// AppConfig carries everything the server needs outside the database.
type AppConfig struct {
	Port          string
	SessionSecret string
	TemplateDir   string
	StaticDir     string
	UploadDir     string
	AdminUsername string
	AdminPassword string
}

func LoadAppConfig() *AppConfig {
	return &AppConfig{
		Port:          getEnv("PORT", "8080"),
		SessionSecret: getEnv("SESSION_SECRET", "calavera-dev-secret"),
		TemplateDir:   getEnv("TEMPLATE_DIR", "web/templates"),
		StaticDir:     getEnv("STATIC_DIR", "web/static"),
		UploadDir:     getEnv("UPLOAD_DIR", "web/static/img/uploads"),
		AdminUsername: getEnv("ADMIN_USERNAME", "clv"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "calavera"),
	}
}

// LogAPIKeyStatus reports which provider keys are configured. Values are
// never printed, only presence.
func LogAPIKeyStatus() {
	keys := []string{
		"GEMINI_API_KEY",
		"GROQ_API_KEY",
		"DEEPSEEK_API_KEY",
		"MISTRAL_API_KEY",
		"LANGSEARCH_API_KEY",
	}

	for _, key := range keys {
		status := "MISSING"
		if os.Getenv(key) != "" {
			status = "SET"
		}
		log.Printf("🔑 %s: %s", key, status)
	}
}
