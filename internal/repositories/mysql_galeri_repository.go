package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/TimCalavera/calavera-web/internal/models"
)

type MySQLGaleriRepository struct {
	db *sqlx.DB
}

func NewMySQLGaleriRepository(db *sqlx.DB) GaleriRepository {
	return &MySQLGaleriRepository{db: db}
}

// List returns gallery entries newest first.
func (r *MySQLGaleriRepository) List(ctx context.Context) ([]models.Galeri, error) {
	var rows []models.Galeri
	query := `SELECT id, filename, caption, uploaded_at FROM galeri ORDER BY uploaded_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list galeri: %w", err)
	}
	return rows, nil
}

func (r *MySQLGaleriRepository) GetByID(ctx context.Context, id int64) (*models.Galeri, error) {
	row := &models.Galeri{}
	query := `SELECT id, filename, caption, uploaded_at FROM galeri WHERE id = ?`
	if err := r.db.GetContext(ctx, row, query, id); err != nil {
		return nil, fmt.Errorf("data galeri tidak ditemukan: %w", err)
	}
	return row, nil
}

func (r *MySQLGaleriRepository) Create(ctx context.Context, g *models.Galeri) error {
	query := `INSERT INTO galeri (filename, caption) VALUES (?, ?)`
	result, err := r.db.ExecContext(ctx, query, g.Filename, g.Caption)
	if err != nil {
		return fmt.Errorf("failed to create galeri: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	g.ID = id
	return nil
}

func (r *MySQLGaleriRepository) UpdateCaption(ctx context.Context, id int64, caption string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE galeri SET caption = ? WHERE id = ?`, caption, id); err != nil {
		return fmt.Errorf("failed to update galeri: %w", err)
	}
	return nil
}

func (r *MySQLGaleriRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM galeri WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete galeri: %w", err)
	}
	return nil
}
