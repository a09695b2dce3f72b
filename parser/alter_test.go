package parser_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sqlc-dev/doubletap/ast"
	"github.com/sqlc-dev/doubletap/internal/normalize"
	"github.com/sqlc-dev/doubletap/parser"
)

func parseCommandList(t *testing.T, sql string) []*ast.AlterCommand {
	t.Helper()
	cmds, err := parser.ParseAlterCommands(context.Background(), strings.NewReader(sql))
	if err != nil {
		t.Fatalf("ParseAlterCommands(%q) error: %v", sql, err)
	}
	return cmds
}

// TestParseAlterCommandsFormat parses a bare command list and checks the
// canonical rendering. Inputs already in canonical form must round trip
// unchanged.
func TestParseAlterCommandsFormat(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "add column",
			sql:  "ADD COLUMN c String",
			want: "ADD COLUMN c String",
		},
		{
			name: "add column if not exists after",
			sql:  "ADD COLUMN IF NOT EXISTS c Nullable(String) AFTER b",
			want: "ADD COLUMN IF NOT EXISTS c Nullable(String) AFTER b",
		},
		{
			name: "add index",
			sql:  "ADD INDEX idx x TYPE minmax GRANULARITY 4",
			want: "ADD INDEX idx x TYPE minmax() GRANULARITY 4",
		},
		{
			name: "add index with typed args",
			sql:  "ADD INDEX idx x TYPE set(100) GRANULARITY 1",
			want: "ADD INDEX idx x TYPE set(100) GRANULARITY 1",
		},
		{
			name: "add projection",
			sql:  "ADD PROJECTION p (SELECT x ORDER BY y)",
			want: "ADD PROJECTION p (SELECT x ORDER BY y)",
		},
		{
			name: "add statistic",
			sql:  "ADD STATISTIC a, b TYPE tdigest",
			want: "ADD STATISTIC a, b TYPE tdigest",
		},
		{
			name: "add constraint",
			sql:  "ADD CONSTRAINT c CHECK x > 0",
			want: "ADD CONSTRAINT c CHECK x > 0",
		},
		{
			name: "drop column",
			sql:  "DROP COLUMN a",
			want: "DROP COLUMN a",
		},
		{
			name: "clear column in partition",
			sql:  "CLEAR COLUMN a IN PARTITION 5",
			want: "CLEAR COLUMN a IN PARTITION 5",
		},
		{
			name: "drop index",
			sql:  "DROP INDEX idx",
			want: "DROP INDEX idx",
		},
		{
			name: "clear index in partition",
			sql:  "CLEAR INDEX idx IN PARTITION '2024'",
			want: "CLEAR INDEX idx IN PARTITION '2024'",
		},
		{
			name: "drop statistic",
			sql:  "DROP STATISTIC a, b",
			want: "DROP STATISTIC a, b",
		},
		{
			name: "clear statistic",
			sql:  "CLEAR STATISTIC a",
			want: "CLEAR STATISTIC a",
		},
		{
			name: "drop projection",
			sql:  "DROP PROJECTION p",
			want: "DROP PROJECTION p",
		},
		{
			name: "clear projection in partition",
			sql:  "CLEAR PROJECTION p IN PARTITION 5",
			want: "CLEAR PROJECTION p IN PARTITION 5",
		},
		{
			name: "drop constraint",
			sql:  "DROP CONSTRAINT c",
			want: "DROP CONSTRAINT c",
		},
		{
			name: "drop partition",
			sql:  "DROP PARTITION 5",
			want: "DROP PARTITION 5",
		},
		{
			name: "detach partition",
			sql:  "DETACH PARTITION 5",
			want: "DETACH PARTITION 5",
		},
		{
			name: "attach partition from",
			sql:  "ATTACH PARTITION 5 FROM other",
			want: "ATTACH PARTITION 5 FROM other",
		},
		{
			name: "modify column",
			sql:  "MODIFY COLUMN a Nullable(String)",
			want: "MODIFY COLUMN a Nullable(String)",
		},
		{
			name: "modify ttl",
			sql:  "MODIFY TTL d + toIntervalDay(30)",
			want: "MODIFY TTL d + toIntervalDay(30)",
		},
		{
			name: "rename column",
			sql:  "RENAME COLUMN a TO b",
			want: "RENAME COLUMN a TO b",
		},
		{
			name: "materialize index",
			sql:  "MATERIALIZE INDEX idx IN PARTITION 5",
			want: "MATERIALIZE INDEX idx IN PARTITION 5",
		},
		{
			name: "materialize statistic",
			sql:  "MATERIALIZE STATISTIC a, b",
			want: "MATERIALIZE STATISTIC a, b",
		},
		{
			name: "materialize projection",
			sql:  "MATERIALIZE PROJECTION p",
			want: "MATERIALIZE PROJECTION p",
		},
		{
			name: "materialize column",
			sql:  "MATERIALIZE COLUMN c IN PARTITION 5",
			want: "MATERIALIZE COLUMN c IN PARTITION 5",
		},
		{
			name: "materialize ttl",
			sql:  "MATERIALIZE TTL",
			want: "MATERIALIZE TTL",
		},
		{
			name: "delete",
			sql:  "DELETE WHERE x > 10",
			want: "DELETE WHERE x > 10",
		},
		{
			name: "delete in partition",
			sql:  "DELETE IN PARTITION 5 WHERE x > 10",
			want: "DELETE IN PARTITION 5 WHERE x > 10",
		},
		{
			name: "update",
			sql:  "UPDATE a = 1, b = b + 1 WHERE x",
			want: "UPDATE a = 1, b = b + 1 WHERE x",
		},
		{
			name: "update in partition",
			sql:  "UPDATE a = 1 IN PARTITION 5 WHERE x",
			want: "UPDATE a = 1 IN PARTITION 5 WHERE x",
		},
		{
			name: "two commands",
			sql:  "DROP COLUMN a, DELETE WHERE x",
			want: "DROP COLUMN a, DELETE WHERE x",
		},
		{
			name: "statistic list followed by another command",
			sql:  "MATERIALIZE STATISTIC a, b, DELETE WHERE x",
			want: "MATERIALIZE STATISTIC a, b, DELETE WHERE x",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmds := parseCommandList(t, tc.sql)
			got := parser.FormatAlterCommands(cmds)
			if got != tc.want {
				t.Errorf("FormatAlterCommands = %q, want %q", got, tc.want)
			}

			// Canonical output must parse back to the same rendering.
			again := parseCommandList(t, got)
			if re := parser.FormatAlterCommands(again); re != got {
				t.Errorf("re-parse changed rendering: %q -> %q", got, re)
			}
		})
	}
}

// TestFormatPreservesMeaning feeds command lists with irregular spacing and
// escape styles and checks the canonical rendering is the same fragment
// after normalization.
func TestFormatPreservesMeaning(t *testing.T) {
	inputs := []string{
		"DELETE   WHERE x>10",
		"UPDATE a=1,b=2 WHERE x",
		"DELETE WHERE name = 'O\\'Brien'",
		"DROP COLUMN a,DELETE WHERE x",
		"MODIFY COLUMN a   Nullable(String)",
	}

	for _, sql := range inputs {
		t.Run(sql, func(t *testing.T) {
			cmds := parseCommandList(t, sql)
			got := parser.FormatAlterCommands(cmds)
			if normalize.ForFormat(got) != normalize.ForFormat(sql) {
				t.Errorf("rendering changed meaning:\n in: %q\nout: %q", sql, got)
			}
		})
	}
}

func TestParseAlterCommandFields(t *testing.T) {
	t.Run("add index", func(t *testing.T) {
		cmds := parseCommandList(t, "ADD INDEX idx lower(x) TYPE set(100) GRANULARITY 4")
		if len(cmds) != 1 {
			t.Fatalf("got %d commands, want 1", len(cmds))
		}
		cmd := cmds[0]
		if cmd.Type != ast.AlterAddIndex {
			t.Fatalf("Type = %s, want AlterAddIndex", cmd.Type)
		}
		if cmd.Index != "idx" {
			t.Errorf("Index = %q, want idx", cmd.Index)
		}
		if cmd.IndexExpr == nil {
			t.Error("IndexExpr not set")
		}
		if cmd.IndexType == nil || cmd.IndexType.Name != "set" {
			t.Errorf("IndexType = %v, want set(100)", cmd.IndexType)
		}
		if cmd.Granularity == nil {
			t.Error("Granularity not set")
		}
	})

	t.Run("update assignments", func(t *testing.T) {
		cmds := parseCommandList(t, "UPDATE a = 1, b = 2 WHERE x")
		if len(cmds) != 1 {
			t.Fatalf("got %d commands, want 1", len(cmds))
		}
		cmd := cmds[0]
		if cmd.Type != ast.AlterUpdate {
			t.Fatalf("Type = %s, want AlterUpdate", cmd.Type)
		}
		if len(cmd.Assignments) != 2 {
			t.Fatalf("got %d assignments, want 2", len(cmd.Assignments))
		}
		if cmd.Assignments[0].Column != "a" || cmd.Assignments[1].Column != "b" {
			t.Errorf("assignment columns = %q, %q, want a, b", cmd.Assignments[0].Column, cmd.Assignments[1].Column)
		}
		if cmd.Where == nil {
			t.Error("Where not set")
		}
	})

	t.Run("clear sets the drop type", func(t *testing.T) {
		cmds := parseCommandList(t, "CLEAR COLUMN a IN PARTITION 5")
		if cmds[0].Type != ast.AlterDropColumn {
			t.Errorf("Type = %s, want AlterDropColumn", cmds[0].Type)
		}
		if !cmds[0].Clear {
			t.Error("Clear not set")
		}
	})

	t.Run("in partition does not parse as IN expression", func(t *testing.T) {
		cmds := parseCommandList(t, "DELETE IN PARTITION 5 WHERE x")
		cmd := cmds[0]
		if cmd.Partition == nil {
			t.Error("Partition not set")
		}
		if cmd.Where == nil {
			t.Error("Where not set")
		}
	})
}

func TestParseAlterStatement(t *testing.T) {
	stmts, err := parser.ParseString(context.Background(), "ALTER TABLE db.t ON CLUSTER c DELETE WHERE x, RENAME COLUMN a TO b")
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	alter, ok := stmts[0].(*ast.AlterQuery)
	if !ok {
		t.Fatalf("statement is %T, want *ast.AlterQuery", stmts[0])
	}
	if alter.Database != "db" || alter.Table != "t" {
		t.Errorf("target = %s.%s, want db.t", alter.Database, alter.Table)
	}
	if alter.OnCluster != "c" {
		t.Errorf("OnCluster = %q, want c", alter.OnCluster)
	}
	if len(alter.Commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(alter.Commands))
	}
	if alter.Commands[0].Type != ast.AlterDeleteWhere {
		t.Errorf("Commands[0].Type = %s, want AlterDeleteWhere", alter.Commands[0].Type)
	}
	if alter.Commands[1].Type != ast.AlterRenameColumn {
		t.Errorf("Commands[1].Type = %s, want AlterRenameColumn", alter.Commands[1].Type)
	}
}

func TestParseAlterCommandsErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"garbage", "%%% not a command %%%"},
		{"trailing input", "DELETE WHERE x ;extra"},
		{"missing where predicate", "DELETE WHERE"},
		{"update missing assignment", "UPDATE WHERE x"},
		{"deeply nested predicate", "DELETE WHERE " + strings.Repeat("(", 600) + "x" + strings.Repeat(")", 600)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parser.ParseAlterCommands(context.Background(), strings.NewReader(tc.sql)); err == nil {
				t.Errorf("ParseAlterCommands(%q) accepted invalid input", tc.sql)
			}
		})
	}
}
