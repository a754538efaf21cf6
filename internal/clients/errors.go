package clients

import "strings"

// CustomError represents different types of AI client errors
type CustomError struct {
	Type    ErrorType
	Message string
}

type ErrorType int

const (
	ErrorTypeGeneral ErrorType = iota
	ErrorTypeTimeout
	ErrorTypeInvalidAPIKey
	ErrorTypeRateLimit
	ErrorTypeServer
)

func (e *CustomError) Error() string {
	return e.Message
}

// NewTimeoutError creates a new timeout/connection error
func NewTimeoutError(message string) *CustomError {
	return &CustomError{Type: ErrorTypeTimeout, Message: message}
}

// NewInvalidAPIKeyError creates a new invalid API key error
func NewInvalidAPIKeyError(message string) *CustomError {
	return &CustomError{Type: ErrorTypeInvalidAPIKey, Message: message}
}

// NewRateLimitError creates a new rate limit error
func NewRateLimitError(message string) *CustomError {
	return &CustomError{Type: ErrorTypeRateLimit, Message: message}
}

// NewServerError creates a new upstream server error
func NewServerError(message string) *CustomError {
	return &CustomError{Type: ErrorTypeServer, Message: message}
}

// NewGeneralError creates a new general error
func NewGeneralError(message string) *CustomError {
	return &CustomError{Type: ErrorTypeGeneral, Message: message}
}

// Keyword groups are checked in order; the first matching group wins.
var sanitizeGroups = []struct {
	keywords []string
	message  string
}{
	{
		keywords: []string{"failed to resolve", "name resolution", "no address", "dns", "no such host"},
		message:  "🌐 Tidak bisa terhubung ke server AI. Pastikan koneksi internet kamu stabil, lalu coba lagi ya!",
	},
	{
		keywords: []string{"timeout", "timed out", "connection", "max retries", "unreachable", "deadline exceeded"},
		message:  "⏱️ Koneksi terputus atau timeout. Coba lagi dalam beberapa saat ya!",
	},
	{
		keywords: []string{"api key", "unauthorized", "401", "403", "invalid api key", "authentication", "forbidden"},
		message:  "🔑 Ada masalah dengan sistem AI. Silakan hubungi admin kelas.",
	},
	{
		keywords: []string{"rate limit", "quota", "too many requests", "429"},
		message:  "⚠️ Terlalu banyak permintaan ke AI. Tunggu sebentar lalu coba lagi ya!",
	},
	{
		keywords: []string{"500", "502", "503", "internal server", "bad gateway", "service unavailable"},
		message:  "🔧 Server AI sedang bermasalah. Coba lagi dalam beberapa menit ya!",
	},
}

const sanitizeFallback = "⚠️ Maaf, saya tidak bisa memproses permintaan kamu saat ini. Coba lagi ya!"

// Sanitize maps a raw transport or provider error to a user-facing message so
// that no credential, hostname or stack trace ever reaches the frontend.
func Sanitize(raw string) string {
	lowered := strings.ToLower(raw)
	for _, group := range sanitizeGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(lowered, keyword) {
				return group.message
			}
		}
	}
	return sanitizeFallback
}
