package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/TimCalavera/calavera-web/internal/models"
)

type MySQLJadwalRepository struct {
	db *sqlx.DB
}

func NewMySQLJadwalRepository(db *sqlx.DB) JadwalRepository {
	return &MySQLJadwalRepository{db: db}
}

// List returns the schedule ordered by day of week and start time.
func (r *MySQLJadwalRepository) List(ctx context.Context) ([]models.Jadwal, error) {
	var rows []models.Jadwal
	query := `SELECT id, hari, jam_mulai, jam_selesai, mata_pelajaran, guru FROM jadwal`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list jadwal: %w", err)
	}
	models.SortJadwal(rows)
	return rows, nil
}

func (r *MySQLJadwalRepository) GetByID(ctx context.Context, id int64) (*models.Jadwal, error) {
	row := &models.Jadwal{}
	query := `SELECT id, hari, jam_mulai, jam_selesai, mata_pelajaran, guru FROM jadwal WHERE id = ?`
	if err := r.db.GetContext(ctx, row, query, id); err != nil {
		return nil, fmt.Errorf("data jadwal tidak ditemukan: %w", err)
	}
	return row, nil
}

func (r *MySQLJadwalRepository) Create(ctx context.Context, j *models.Jadwal) error {
	query := `INSERT INTO jadwal (hari, jam_mulai, jam_selesai, mata_pelajaran, guru) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, j.Hari, j.JamMulai, j.JamSelesai, j.MataPelajaran, j.Guru)
	if err != nil {
		return fmt.Errorf("failed to create jadwal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	j.ID = id
	return nil
}

func (r *MySQLJadwalRepository) Update(ctx context.Context, j *models.Jadwal) error {
	query := `UPDATE jadwal SET hari = ?, jam_mulai = ?, jam_selesai = ?, mata_pelajaran = ?, guru = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, j.Hari, j.JamMulai, j.JamSelesai, j.MataPelajaran, j.Guru, j.ID); err != nil {
		return fmt.Errorf("failed to update jadwal: %w", err)
	}
	return nil
}

func (r *MySQLJadwalRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM jadwal WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete jadwal: %w", err)
	}
	return nil
}
