package clients

import (
	"strings"
	"testing"

	"github.com/TimCalavera/calavera-web/internal/models"
)

func TestBuildSystemInstruction(t *testing.T) {
	t.Run("uses default personality when empty", func(t *testing.T) {
		got := buildSystemInstruction("")
		if !strings.Contains(got, defaultPersonality) {
			t.Errorf("expected default personality in instruction")
		}
	})

	t.Run("uses caller personality", func(t *testing.T) {
		got := buildSystemInstruction("Serius dan to the point.")
		if !strings.Contains(got, "Serius dan to the point.") {
			t.Errorf("expected custom personality in instruction")
		}
		if strings.Contains(got, defaultPersonality) {
			t.Errorf("default personality should be replaced")
		}
	})
}

func TestChatWindow(t *testing.T) {
	textTurn := func(role, content string) models.ChatTurn {
		return models.ChatTurn{Role: role, Kind: models.TurnText, Content: content}
	}

	t.Run("keeps at most five turns", func(t *testing.T) {
		var history []models.ChatTurn
		for i := 0; i < 8; i++ {
			history = append(history, textTurn(models.RoleUser, "msg"))
		}

		window := chatWindow(history)
		if len(window) != historyWindow {
			t.Errorf("expected %d turns, got %d", historyWindow, len(window))
		}
	})

	t.Run("drops search and attachment turns", func(t *testing.T) {
		history := []models.ChatTurn{
			textTurn(models.RoleUser, "halo"),
			{Role: models.RoleUser, Kind: models.TurnSearch, Content: "cuaca hari ini"},
			{Role: models.RoleAssistant, Kind: models.TurnSearch, Content: "hasil pencarian"},
			{Role: models.RoleUser, Kind: models.TurnImage, Content: "gambar apa ini"},
			textTurn(models.RoleAssistant, "halo juga"),
		}

		window := chatWindow(history)
		if len(window) != 2 {
			t.Fatalf("expected 2 turns, got %d", len(window))
		}
		if window[0].Content != "halo" || window[1].Content != "halo juga" {
			t.Errorf("unexpected window contents: %+v", window)
		}
	})

	t.Run("keeps legacy turns without a kind", func(t *testing.T) {
		history := []models.ChatTurn{
			{Role: models.RoleUser, Content: "tanpa kind"},
		}
		window := chatWindow(history)
		if len(window) != 1 {
			t.Errorf("expected 1 turn, got %d", len(window))
		}
	})

	t.Run("empty history", func(t *testing.T) {
		if got := chatWindow(nil); len(got) != 0 {
			t.Errorf("expected empty window, got %d turns", len(got))
		}
	})
}
