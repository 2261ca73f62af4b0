package repository

import (
	"testing"

	"github.com/St1cky1/task-management/internal/entity"
)

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name    string
		sort    []entity.Order
		columns map[string]string
		id      string
		want    string
	}{
		{
			name:    "default",
			columns: PersonSortColumns,
			id:      "id",
			want:    "ORDER BY id ASC",
		},
		{
			name: "unknown property dropped",
			sort: []entity.Order{
				{Property: "lastName", Direction: entity.Desc},
				{Property: "password", Direction: entity.Asc},
			},
			columns: PersonSortColumns,
			id:      "id",
			want:    "ORDER BY last_name DESC, id ASC",
		},
		{
			name:    "id direction honoured",
			sort:    []entity.Order{{Property: "id", Direction: entity.Desc}},
			columns: PersonSortColumns,
			id:      "id",
			want:    "ORDER BY id DESC",
		},
		{
			name:    "task by owner",
			sort:    []entity.Order{{Property: "person", Direction: entity.Asc}},
			columns: TaskSortColumns,
			id:      "t.id",
			want:    "ORDER BY p.last_name ASC, t.id ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrderBy(tt.sort, tt.columns, tt.id); got != tt.want {
				t.Errorf("OrderBy() = %q, want %q", got, tt.want)
			}
		})
	}
}
