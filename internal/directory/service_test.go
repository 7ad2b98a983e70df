package directory_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danuprasetya/hr-management/internal/directory"
	"github.com/danuprasetya/hr-management/internal/rbac"
)

func TestDirectory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Directory Suite")
}

type mockDirectoryRepository struct {
	employees []*directory.Employee
	listErr   error
}

func (m *mockDirectoryRepository) List(ctx context.Context, query directory.ListQuery) ([]*directory.Employee, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}

	var matched []*directory.Employee
	for _, e := range m.employees {
		if query.Department != "" && e.Department != query.Department {
			continue
		}
		if query.Search != "" && !strings.Contains(strings.ToLower(e.DisplayName), strings.ToLower(query.Search)) {
			continue
		}
		matched = append(matched, e)
	}

	total := len(matched)
	start := query.Offset
	end := query.Offset + query.Limit
	if start >= total {
		return []*directory.Employee{}, total, nil
	}
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *mockDirectoryRepository) CountByDepartment(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, e := range m.employees {
		counts[e.Department]++
	}
	return counts, nil
}

var _ = Describe("DirectoryService", func() {
	var (
		service *directory.Service
		repo    *mockDirectoryRepository
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = &mockDirectoryRepository{
			employees: []*directory.Employee{
				{ID: "1", DisplayName: "Ari Engineer", Role: "employee", Department: "engineering"},
				{ID: "2", DisplayName: "Budi Builder", Role: "team_lead", Department: "engineering"},
				{ID: "3", DisplayName: "Citra Counter", Role: "employee", Department: "finance"},
			},
		}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = directory.NewService(repo, lg)
		ctx = context.Background()
	})

	Describe("ListEmployees", func() {
		It("should page the full directory with catalog display names", func() {
			resp, err := service.ListEmployees(ctx, directory.ListQuery{})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Total).To(Equal(3))
			Expect(resp.Limit).To(Equal(20))
			Expect(resp.Employees[0].RoleName).To(Equal("Employee"))
			Expect(resp.Employees[0].DepartmentName).To(Equal("Engineering"))
		})

		It("should filter by department", func() {
			resp, err := service.ListEmployees(ctx, directory.ListQuery{Department: "finance"})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Total).To(Equal(1))
			Expect(resp.Employees[0].DisplayName).To(Equal("Citra Counter"))
		})

		It("should search by name", func() {
			resp, err := service.ListEmployees(ctx, directory.ListQuery{Search: "budi"})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Total).To(Equal(1))
			Expect(resp.Employees[0].ID).To(Equal("2"))
		})

		It("should clamp an oversized page", func() {
			resp, err := service.ListEmployees(ctx, directory.ListQuery{Limit: 10000})
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Limit).To(Equal(20))
		})

		It("should reject an oversized search term", func() {
			_, err := service.ListEmployees(ctx, directory.ListQuery{Search: strings.Repeat("x", 101)})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListDepartments", func() {
		It("should cover the whole catalog with live headcounts", func() {
			summaries, err := service.ListDepartments(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(summaries).To(HaveLen(len(rbac.AllDepartments)))

			byName := make(map[string]int)
			for _, s := range summaries {
				byName[s.Department] = s.Headcount
			}
			Expect(byName["engineering"]).To(Equal(2))
			Expect(byName["finance"]).To(Equal(1))
			Expect(byName["legal"]).To(Equal(0))
		})
	})
})
