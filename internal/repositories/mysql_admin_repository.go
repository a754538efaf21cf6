package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/TimCalavera/calavera-web/internal/models"
)

type MySQLAdminRepository struct {
	db *sqlx.DB
}

func NewMySQLAdminRepository(db *sqlx.DB) AdminRepository {
	return &MySQLAdminRepository{db: db}
}

func (r *MySQLAdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	admin := &models.Admin{}
	query := `SELECT id, username, password FROM admin WHERE username = ?`

	if err := r.db.GetContext(ctx, admin, query, username); err != nil {
		return nil, fmt.Errorf("admin tidak ditemukan: %w", err)
	}
	return admin, nil
}

func (r *MySQLAdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admin`); err != nil {
		return 0, fmt.Errorf("failed to count admin rows: %w", err)
	}
	return count, nil
}

// ReplaceAll wipes the admin table and inserts the single maintained account.
// Used by the resetadmin command, not by request handling.
func (r *MySQLAdminRepository) ReplaceAll(ctx context.Context, username, passwordHash string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM admin`); err != nil {
		return fmt.Errorf("failed to clear admin table: %w", err)
	}
	return r.Create(ctx, username, passwordHash)
}

func (r *MySQLAdminRepository) Create(ctx context.Context, username, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO admin (username, password) VALUES (?, ?)`, username, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}
