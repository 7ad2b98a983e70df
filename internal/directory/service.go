package directory

import (
	"context"
	"log/slog"

	"github.com/danuprasetya/hr-management/internal/rbac"
)

type RepositoryAPI interface {
	List(ctx context.Context, query ListQuery) ([]*Employee, int, error)
	CountByDepartment(ctx context.Context) (map[string]int, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListEmployees returns one page of the directory.
func (s *Service) ListEmployees(ctx context.Context, query ListQuery) (*ListResponse, error) {
	query.Normalize()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	employees, total, err := s.repo.List(ctx, query)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err, "department", query.Department)
		return nil, err
	}

	for _, e := range employees {
		e.Decorate()
	}

	return &ListResponse{
		Employees: employees,
		Total:     total,
		Limit:     query.Limit,
		Offset:    query.Offset,
	}, nil
}

// ListDepartments returns the department catalog with live headcounts.
func (s *Service) ListDepartments(ctx context.Context) ([]DepartmentSummary, error) {
	counts, err := s.repo.CountByDepartment(ctx)
	if err != nil {
		s.logger.Error("failed to count departments", "error", err)
		return nil, err
	}

	summaries := make([]DepartmentSummary, 0, len(rbac.AllDepartments))
	for _, dept := range rbac.AllDepartments {
		summaries = append(summaries, DepartmentSummary{
			Department:  string(dept),
			DisplayName: rbac.DeptDisplayName(dept),
			ColorTag:    rbac.DeptColorTag(dept),
			ManagerRole: string(rbac.ManagerRole(dept)),
			Modules:     rbac.NativeModules(dept),
			Headcount:   counts[string(dept)],
		})
	}
	return summaries, nil
}
