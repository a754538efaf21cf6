package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/TimCalavera/calavera-web/internal/models"
)

type MySQLStrukturRepository struct {
	db *sqlx.DB
}

func NewMySQLStrukturRepository(db *sqlx.DB) StrukturRepository {
	return &MySQLStrukturRepository{db: db}
}

// List returns all nodes with their parent's name joined in, roots first.
func (r *MySQLStrukturRepository) List(ctx context.Context) ([]models.Struktur, error) {
	var rows []models.Struktur
	query := `
		SELECT s1.id, s1.nama, s1.role, s1.parent_id, s1.foto, s2.nama AS parent_nama
		FROM struktur_kelas s1
		LEFT JOIN struktur_kelas s2 ON s1.parent_id = s2.id
		ORDER BY s1.parent_id IS NULL DESC, s1.id
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list struktur: %w", err)
	}
	return rows, nil
}

func (r *MySQLStrukturRepository) GetByID(ctx context.Context, id int64) (*models.Struktur, error) {
	row := &models.Struktur{}
	query := `
		SELECT s1.id, s1.nama, s1.role, s1.parent_id, s1.foto, s2.nama AS parent_nama
		FROM struktur_kelas s1
		LEFT JOIN struktur_kelas s2 ON s1.parent_id = s2.id
		WHERE s1.id = ?
	`
	if err := r.db.GetContext(ctx, row, query, id); err != nil {
		return nil, fmt.Errorf("data struktur tidak ditemukan: %w", err)
	}
	return row, nil
}

// ListExcept lists every node other than the given id, used to pick a parent
// while editing without offering the node itself.
func (r *MySQLStrukturRepository) ListExcept(ctx context.Context, id int64) ([]models.Struktur, error) {
	var rows []models.Struktur
	query := `SELECT id, nama, role, parent_id, foto FROM struktur_kelas WHERE id != ?`
	if err := r.db.SelectContext(ctx, &rows, query, id); err != nil {
		return nil, fmt.Errorf("failed to list struktur: %w", err)
	}
	return rows, nil
}

func (r *MySQLStrukturRepository) Create(ctx context.Context, s *models.Struktur) error {
	query := `INSERT INTO struktur_kelas (nama, role, parent_id, foto) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, s.Nama, s.Role, s.ParentID, s.Foto)
	if err != nil {
		return fmt.Errorf("failed to create struktur: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	s.ID = id
	return nil
}

// Update keeps the existing photo reference unless updateFoto is set.
func (r *MySQLStrukturRepository) Update(ctx context.Context, s *models.Struktur, updateFoto bool) error {
	var err error
	if updateFoto {
		_, err = r.db.ExecContext(ctx,
			`UPDATE struktur_kelas SET nama = ?, role = ?, parent_id = ?, foto = ? WHERE id = ?`,
			s.Nama, s.Role, s.ParentID, s.Foto, s.ID)
	} else {
		_, err = r.db.ExecContext(ctx,
			`UPDATE struktur_kelas SET nama = ?, role = ?, parent_id = ? WHERE id = ?`,
			s.Nama, s.Role, s.ParentID, s.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update struktur: %w", err)
	}
	return nil
}

// Delete removes one node. Children are kept; their parent reference is
// cleared by the schema and they render without a parent name.
func (r *MySQLStrukturRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM struktur_kelas WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete struktur: %w", err)
	}
	return nil
}
