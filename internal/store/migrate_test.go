package store

import (
	"strings"
	"testing"
)

// ddlTableColumns parses the CREATE TABLE statement for the given table
// out of the migration list and returns its column names.
func ddlTableColumns(t *testing.T, table string) map[string]bool {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	for _, stmt := range ddl {
		idx := strings.Index(stmt, marker)
		if idx < 0 {
			continue
		}
		body := stmt[idx+len(marker):]
		if end := strings.LastIndex(body, ")"); end >= 0 {
			body = body[:end]
		}
		cols := make(map[string]bool)
		for _, line := range strings.Split(body, ",") {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			name := fields[0]
			// Skip table-level constraints such as UNIQUE (...).
			if name != strings.ToLower(name) {
				continue
			}
			cols[name] = true
		}
		return cols
	}
	t.Fatalf("no CREATE TABLE statement for %q in ddl", table)
	return nil
}

// The repositories name their columns in literal SQL; if a column list
// drifts from the migration DDL every query on that table fails at
// runtime. This pins each list to the DDL without a live database.
func TestRepositoryColumnsMatchDDL(t *testing.T) {
	cases := []struct {
		table   string
		columns string
	}{
		{"templates", templateColumns},
		{"instances", instanceColumns},
		{"projects", projectColumns},
		{"employees", employeeColumns},
		{"notifications", notificationColumns},
		{"users", "id, username, email, password_hash, roles, created_at"},
		{"audit_logs", "id, action, resource_type, resource_id, actor, details, created_at"},
		{"teams", "id, name, description, created_at"},
		{"job_positions", "id, title, description, created_at"},
	}
	for _, tc := range cases {
		t.Run(tc.table, func(t *testing.T) {
			defined := ddlTableColumns(t, tc.table)
			for _, col := range strings.Split(tc.columns, ",") {
				col = strings.TrimSpace(col)
				if !defined[col] {
					t.Errorf("column %q is not defined in the %s DDL", col, tc.table)
				}
			}
		})
	}
}

func TestNotificationInsertColumnsExist(t *testing.T) {
	defined := ddlTableColumns(t, "notifications")
	for _, col := range []string{"id", "kind", "title", "body", "resource_id"} {
		if !defined[col] {
			t.Errorf("CreateNotification inserts into %q which the DDL does not define", col)
		}
	}
}
