package repository

import (
	"strings"

	"github.com/St1cky1/task-management/internal/entity"
)

// PersonSortColumns maps sortable person properties to columns.
var PersonSortColumns = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"dni":       "dni",
}

// TaskSortColumns maps sortable task properties to columns of the task/person join.
var TaskSortColumns = map[string]string{
	"id":           "t.id",
	"description":  "t.description",
	"dueDate":      "t.due_date",
	"creationDate": "t.creation_date",
	"done":         "t.done",
	"person":       "p.last_name",
}

// OrderBy builds an ORDER BY clause from whitelisted properties. Unknown
// properties are dropped; idColumn is always appended as a tiebreaker so
// paging stays stable.
func OrderBy(sort []entity.Order, columns map[string]string, idColumn string) string {
	parts := make([]string, 0, len(sort)+1)
	for _, o := range sort {
		col, ok := columns[o.Property]
		if !ok || col == idColumn {
			continue
		}
		dir := "ASC"
		if o.Direction == entity.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	idDir := "ASC"
	for _, o := range sort {
		if columns[o.Property] == idColumn && o.Direction == entity.Desc {
			idDir = "DESC"
		}
	}
	parts = append(parts, idColumn+" "+idDir)
	return "ORDER BY " + strings.Join(parts, ", ")
}
