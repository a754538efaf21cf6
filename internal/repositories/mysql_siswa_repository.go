package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/TimCalavera/calavera-web/internal/models"
)

const mysqlDuplicateEntry = 1062

type MySQLSiswaRepository struct {
	db *sqlx.DB
}

func NewMySQLSiswaRepository(db *sqlx.DB) SiswaRepository {
	return &MySQLSiswaRepository{db: db}
}

// List returns students in numeric absen order. The column is stored as text
// so it has to be cast, otherwise "10" sorts before "2".
func (r *MySQLSiswaRepository) List(ctx context.Context) ([]models.Siswa, error) {
	var rows []models.Siswa
	query := `SELECT id, nama, absen, bio, foto, created_at FROM siswa ORDER BY CAST(absen AS UNSIGNED)`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list siswa: %w", err)
	}
	return rows, nil
}

func (r *MySQLSiswaRepository) GetByID(ctx context.Context, id int64) (*models.Siswa, error) {
	row := &models.Siswa{}
	query := `SELECT id, nama, absen, bio, foto, created_at FROM siswa WHERE id = ?`
	if err := r.db.GetContext(ctx, row, query, id); err != nil {
		return nil, fmt.Errorf("data siswa tidak ditemukan: %w", err)
	}
	return row, nil
}

func (r *MySQLSiswaRepository) Create(ctx context.Context, s *models.Siswa) error {
	query := `INSERT INTO siswa (nama, absen, bio, foto) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, s.Nama, s.Absen, s.Bio, s.Foto)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateAbsen
		}
		return fmt.Errorf("failed to create siswa: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	s.ID = id
	return nil
}

func (r *MySQLSiswaRepository) Update(ctx context.Context, s *models.Siswa, updateFoto bool) error {
	var err error
	if updateFoto {
		_, err = r.db.ExecContext(ctx,
			`UPDATE siswa SET nama = ?, absen = ?, bio = ?, foto = ? WHERE id = ?`,
			s.Nama, s.Absen, s.Bio, s.Foto, s.ID)
	} else {
		_, err = r.db.ExecContext(ctx,
			`UPDATE siswa SET nama = ?, absen = ?, bio = ? WHERE id = ?`,
			s.Nama, s.Absen, s.Bio, s.ID)
	}
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateAbsen
		}
		return fmt.Errorf("failed to update siswa: %w", err)
	}
	return nil
}

func (r *MySQLSiswaRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM siswa WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete siswa: %w", err)
	}
	return nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
