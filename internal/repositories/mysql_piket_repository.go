package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/TimCalavera/calavera-web/internal/models"
)

type MySQLPiketRepository struct {
	db *sqlx.DB
}

func NewMySQLPiketRepository(db *sqlx.DB) PiketRepository {
	return &MySQLPiketRepository{db: db}
}

// List returns the duty roster ordered by day of week.
func (r *MySQLPiketRepository) List(ctx context.Context) ([]models.Piket, error) {
	var rows []models.Piket
	query := `SELECT id, hari, nama_siswa, tugas FROM jadwal_piket`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list piket: %w", err)
	}
	models.SortPiket(rows)
	return rows, nil
}

func (r *MySQLPiketRepository) GetByID(ctx context.Context, id int64) (*models.Piket, error) {
	row := &models.Piket{}
	query := `SELECT id, hari, nama_siswa, tugas FROM jadwal_piket WHERE id = ?`
	if err := r.db.GetContext(ctx, row, query, id); err != nil {
		return nil, fmt.Errorf("data piket tidak ditemukan: %w", err)
	}
	return row, nil
}

func (r *MySQLPiketRepository) Create(ctx context.Context, p *models.Piket) error {
	query := `INSERT INTO jadwal_piket (hari, nama_siswa, tugas) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, p.Hari, p.NamaSiswa, p.Tugas)
	if err != nil {
		return fmt.Errorf("failed to create piket: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	p.ID = id
	return nil
}

func (r *MySQLPiketRepository) Update(ctx context.Context, p *models.Piket) error {
	query := `UPDATE jadwal_piket SET hari = ?, nama_siswa = ?, tugas = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, p.Hari, p.NamaSiswa, p.Tugas, p.ID); err != nil {
		return fmt.Errorf("failed to update piket: %w", err)
	}
	return nil
}

func (r *MySQLPiketRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM jadwal_piket WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete piket: %w", err)
	}
	return nil
}
