package repositories

import (
	"context"
	"sync"

	"github.com/TimCalavera/calavera-web/internal/models"
)

type memoryHistoryRepository struct {
	histories map[string][]models.ChatTurn
	mutex     sync.RWMutex
}

func NewMemoryHistoryRepository() ChatHistoryRepository {
	return &memoryHistoryRepository{
		histories: make(map[string][]models.ChatTurn),
		mutex:     sync.RWMutex{},
	}
}

func (r *memoryHistoryRepository) Get(ctx context.Context, sessionID string) ([]models.ChatTurn, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	history, exists := r.histories[sessionID]
	if !exists {
		return nil, nil
	}

	out := make([]models.ChatTurn, len(history))
	copy(out, history)
	return out, nil
}

func (r *memoryHistoryRepository) Save(ctx context.Context, sessionID string, history []models.ChatTurn) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := make([]models.ChatTurn, len(history))
	copy(stored, history)
	r.histories[sessionID] = stored
	return nil
}

func (r *memoryHistoryRepository) Clear(ctx context.Context, sessionID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.histories, sessionID)
	return nil
}
