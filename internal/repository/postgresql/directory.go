package postgresql

import (
	"context"
	"fmt"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/database"
)

type directoryRepositoryImpl struct {
	db        *database.DB
	companyID string
}

func NewDirectoryRepository(db *database.DB, companyID string) attendance.DirectoryRepository {
	return &directoryRepositoryImpl{db: db, companyID: companyID}
}

// GetDirectory implements attendance.DirectoryRepository.
// Punch clocks enroll employees by employee_code; resigned (soft-deleted)
// employees are excluded. An empty companyID reads every company.
func (r *directoryRepositoryImpl) GetDirectory(ctx context.Context) (attendance.EmployeeDirectory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_code, full_name
		FROM employees
		WHERE deleted_at IS NULL
			AND employee_code IS NOT NULL
			AND employee_code <> ''
			AND ($1 = '' OR company_id::text = $1)
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, r.companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee directory: %w", err)
	}
	defer rows.Close()

	dir := make(attendance.EmployeeDirectory)
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return nil, fmt.Errorf("failed to scan employee directory row: %w", err)
		}
		dir[code] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee directory: %w", err)
	}

	return dir, nil
}
