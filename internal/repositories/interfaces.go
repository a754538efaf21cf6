package repositories

import (
	"context"

	"github.com/TimCalavera/calavera-web/internal/models"
)

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Count(ctx context.Context) (int, error)
	ReplaceAll(ctx context.Context, username, passwordHash string) error
	Create(ctx context.Context, username, passwordHash string) error
}

type StrukturRepository interface {
	List(ctx context.Context) ([]models.Struktur, error)
	GetByID(ctx context.Context, id int64) (*models.Struktur, error)
	ListExcept(ctx context.Context, id int64) ([]models.Struktur, error)
	Create(ctx context.Context, s *models.Struktur) error
	Update(ctx context.Context, s *models.Struktur, updateFoto bool) error
	Delete(ctx context.Context, id int64) error
}

type JadwalRepository interface {
	List(ctx context.Context) ([]models.Jadwal, error)
	GetByID(ctx context.Context, id int64) (*models.Jadwal, error)
	Create(ctx context.Context, j *models.Jadwal) error
	Update(ctx context.Context, j *models.Jadwal) error
	Delete(ctx context.Context, id int64) error
}

type PiketRepository interface {
	List(ctx context.Context) ([]models.Piket, error)
	GetByID(ctx context.Context, id int64) (*models.Piket, error)
	Create(ctx context.Context, p *models.Piket) error
	Update(ctx context.Context, p *models.Piket) error
	Delete(ctx context.Context, id int64) error
}

type SiswaRepository interface {
	List(ctx context.Context) ([]models.Siswa, error)
	GetByID(ctx context.Context, id int64) (*models.Siswa, error)
	Create(ctx context.Context, s *models.Siswa) error
	Update(ctx context.Context, s *models.Siswa, updateFoto bool) error
	Delete(ctx context.Context, id int64) error
}

type GaleriRepository interface {
	List(ctx context.Context) ([]models.Galeri, error)
	GetByID(ctx context.Context, id int64) (*models.Galeri, error)
	Create(ctx context.Context, g *models.Galeri) error
	UpdateCaption(ctx context.Context, id int64, caption string) error
	Delete(ctx context.Context, id int64) error
}

// ChatHistoryRepository stores the rolling conversation of one chat session.
type ChatHistoryRepository interface {
	Get(ctx context.Context, sessionID string) ([]models.ChatTurn, error)
	Save(ctx context.Context, sessionID string, turns []models.ChatTurn) error
	Clear(ctx context.Context, sessionID string) error
}

// ErrDuplicateAbsen is returned when a student's attendance number collides
// with an existing one; the row is not inserted.
var ErrDuplicateAbsen = errDuplicateAbsen{}

type errDuplicateAbsen struct{}

func (errDuplicateAbsen) Error() string { return "nomor absen sudah ada" }
