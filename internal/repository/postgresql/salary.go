package postgresql

import (
	"context"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

const salaryColumns = `id, user_id, amount, currency, effective_date, NULLIF(notes, ''), version, created_by, created_at, updated_at`

func scanSalary(row pgx.Row) (salary.Salary, error) {
	var s salary.Salary
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Amount,
		&s.Currency,
		&s.EffectiveDate,
		&s.Notes,
		&s.Version,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// Create implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salaries (user_id, amount, currency, effective_date, notes, version, created_by)
		VALUES ($1, $2, $3, $4, COALESCE($5, ''), $6, $7)
		RETURNING ` + salaryColumns

	return scanSalary(q.QueryRow(ctx, query,
		s.UserID,
		s.Amount,
		s.Currency,
		dateOnly(s.EffectiveDate),
		s.Notes,
		s.Version,
		s.CreatedBy,
	))
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id int64) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	return scanSalary(q.QueryRow(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE id = $1`, id))
}

// GetByIDForUpdate implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	return scanSalary(q.QueryRow(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE id = $1 FOR UPDATE`, id))
}

// Update implements salary.SalaryRepository. The write only lands when the
// stored version is the one s was read at.
func (r *salaryRepositoryImpl) Update(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salaries
		SET amount = $2, currency = $3, effective_date = $4, notes = COALESCE($5, ''), version = $6, updated_at = NOW()
		WHERE id = $1 AND version = $6 - 1
		RETURNING ` + salaryColumns

	return scanSalary(q.QueryRow(ctx, query,
		s.ID,
		s.Amount,
		s.Currency,
		dateOnly(s.EffectiveDate),
		s.Notes,
		s.Version,
	))
}

// ListByUser implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) ListByUser(ctx context.Context, userID int64) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salaries
		WHERE user_id = $1
		ORDER BY effective_date DESC, id DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	salaries := []salary.Salary{}
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, s)
	}

	return salaries, rows.Err()
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}
