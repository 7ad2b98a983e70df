package directory

import "errors"

// ListQuery carries the directory listing filters.
type ListQuery struct {
	Department string
	Search     string
	Limit      int
	Offset     int
}

func (q *ListQuery) Normalize() {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

func (q ListQuery) Validate() error {
	if len(q.Search) > 100 {
		return errors.New("search term too long")
	}
	return nil
}

type ListResponse struct {
	Employees []*Employee `json:"employees"`
	Total     int         `json:"total"`
	Limit     int         `json:"limit"`
	Offset    int         `json:"offset"`
}

type DepartmentSummary struct {
	Department  string   `json:"department"`
	DisplayName string   `json:"display_name"`
	ColorTag    string   `json:"color_tag"`
	ManagerRole string   `json:"manager_role"`
	Modules     []string `json:"modules"`
	Headcount   int      `json:"headcount"`
}
