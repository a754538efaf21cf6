package clients

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "dns failure",
			raw:  `Post "https://api.example.com": dial tcp: lookup api.example.com: no such host`,
			want: "🌐 Tidak bisa terhubung ke server AI. Pastikan koneksi internet kamu stabil, lalu coba lagi ya!",
		},
		{
			name: "context deadline",
			raw:  "context deadline exceeded (Client.Timeout exceeded while awaiting headers)",
			want: "⏱️ Koneksi terputus atau timeout. Coba lagi dalam beberapa saat ya!",
		},
		{
			name: "invalid api key",
			raw:  "Gemini API error (status 401): API key not valid",
			want: "🔑 Ada masalah dengan sistem AI. Silakan hubungi admin kelas.",
		},
		{
			name: "rate limit",
			raw:  "Groq API error (status 429): rate limit reached for model",
			want: "⚠️ Terlalu banyak permintaan ke AI. Tunggu sebentar lalu coba lagi ya!",
		},
		{
			name: "server error",
			raw:  "DeepSeek API error (status 503): service unavailable",
			want: "🔧 Server AI sedang bermasalah. Coba lagi dalam beberapa menit ya!",
		},
		{
			name: "case insensitive",
			raw:  "RATE LIMIT exceeded",
			want: "⚠️ Terlalu banyak permintaan ke AI. Tunggu sebentar lalu coba lagi ya!",
		},
		{
			name: "unknown error falls back",
			raw:  "something completely different happened",
			want: sanitizeFallback,
		},
		{
			name: "empty string falls back",
			raw:  "",
			want: sanitizeFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.raw)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSanitizeFirstMatchWins(t *testing.T) {
	// Contains both a dns keyword and a timeout keyword; the dns group is
	// checked first.
	got := Sanitize("no such host: connection timed out")
	if !strings.Contains(got, "🌐") {
		t.Errorf("expected dns message, got %q", got)
	}
}

func TestCustomErrorTypes(t *testing.T) {
	tests := []struct {
		err  *CustomError
		want ErrorType
	}{
		{NewGeneralError("x"), ErrorTypeGeneral},
		{NewTimeoutError("x"), ErrorTypeTimeout},
		{NewInvalidAPIKeyError("x"), ErrorTypeInvalidAPIKey},
		{NewRateLimitError("x"), ErrorTypeRateLimit},
		{NewServerError("x"), ErrorTypeServer},
	}

	for _, tt := range tests {
		if tt.err.Type != tt.want {
			t.Errorf("error %q: type = %d, want %d", tt.err.Message, tt.err.Type, tt.want)
		}
		if tt.err.Error() != "x" {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), "x")
		}
	}
}
