package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/danuprasetya/hr-management/internal/directory"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) List(ctx context.Context, query directory.ListQuery) ([]*directory.Employee, int, error) {
	where := []string{"status <> 'inactive'"}
	args := map[string]interface{}{
		"limit":  query.Limit,
		"offset": query.Offset,
	}

	if query.Department != "" {
		where = append(where, "department = :department")
		args["department"] = query.Department
	}
	if query.Search != "" {
		where = append(where, "(display_name ILIKE :search OR email ILIKE :search)")
		args["search"] = "%" + query.Search + "%"
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM user_profiles WHERE %s", whereClause)
	rows, err := r.db.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			rows.Close()
			return nil, 0, err
		}
	}
	rows.Close()

	listQuery := fmt.Sprintf(`SELECT id, email, display_name, role, department, employee_id, manager_id, status, avatar_url, joined_at
	                          FROM user_profiles
	                          WHERE %s
	                          ORDER BY display_name ASC
	                          LIMIT :limit OFFSET :offset`, whereClause)

	rows, err = r.db.NamedQueryContext(ctx, listQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []*directory.Employee
	for rows.Next() {
		var e directory.Employee
		if err := rows.StructScan(&e); err != nil {
			return nil, 0, err
		}
		employees = append(employees, &e)
	}

	return employees, total, rows.Err()
}

func (r *Repository) CountByDepartment(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT department, COUNT(*) FROM user_profiles WHERE status <> 'inactive' GROUP BY department`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var dept string
		var count int
		if err := rows.Scan(&dept, &count); err != nil {
			return nil, err
		}
		counts[dept] = count
	}

	return counts, rows.Err()
}
