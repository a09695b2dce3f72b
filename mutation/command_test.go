package mutation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sqlc-dev/doubletap/ast"
	"github.com/sqlc-dev/doubletap/mutation"
	"github.com/sqlc-dev/doubletap/parser"
)

// parseAlterCommand parses a single bare ALTER command.
func parseAlterCommand(t *testing.T, sql string) *ast.AlterCommand {
	t.Helper()
	cmds, err := parser.ParseAlterCommands(context.Background(), strings.NewReader(sql))
	if err != nil {
		t.Fatalf("ParseAlterCommands(%q) error: %v", sql, err)
	}
	if len(cmds) != 1 {
		t.Fatalf("ParseAlterCommands(%q): expected 1 command, got %d", sql, len(cmds))
	}
	return cmds[0]
}

func classify(t *testing.T, sql string, pc mutation.ParseContext) *mutation.Command {
	t.Helper()
	cmd, err := mutation.ParseCommand(parseAlterCommand(t, sql), pc)
	if err != nil {
		t.Fatalf("ParseCommand(%q) error: %v", sql, err)
	}
	if cmd == nil {
		t.Fatalf("ParseCommand(%q) returned nil", sql)
	}
	return cmd
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		context mutation.ParseContext
		check   func(t *testing.T, cmd *mutation.Command)
	}{
		{
			name:    "delete",
			sql:     "DELETE WHERE x > 10",
			context: mutation.MetadataOnlyContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.Delete {
					t.Errorf("Type = %s, want DELETE", cmd.Type)
				}
				if cmd.Predicate == nil {
					t.Error("Predicate not set")
				}
				if cmd.Partition != nil {
					t.Error("Partition set without IN PARTITION")
				}
			},
		},
		{
			name:    "delete in partition",
			sql:     "DELETE IN PARTITION 5 WHERE x > 10",
			context: mutation.MetadataOnlyContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.Delete {
					t.Errorf("Type = %s, want DELETE", cmd.Type)
				}
				if cmd.Partition == nil {
					t.Error("Partition not set")
				}
			},
		},
		{
			name:    "update",
			sql:     "UPDATE a = 1, b = b + 1 WHERE x > 0",
			context: mutation.MetadataOnlyContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.Update {
					t.Errorf("Type = %s, want UPDATE", cmd.Type)
				}
				if len(cmd.ColumnToUpdateExpression) != 2 {
					t.Errorf("got %d assignments, want 2", len(cmd.ColumnToUpdateExpression))
				}
				if cmd.ColumnToUpdateExpression["a"] == nil || cmd.ColumnToUpdateExpression["b"] == nil {
					t.Error("missing assignment for a or b")
				}
				if cmd.Predicate == nil {
					t.Error("Predicate not set")
				}
			},
		},
		{
			name:    "update in partition",
			sql:     "UPDATE a = 1 IN PARTITION '2024' WHERE x > 0",
			context: mutation.MetadataOnlyContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.Update {
					t.Errorf("Type = %s, want UPDATE", cmd.Type)
				}
				if cmd.Partition == nil {
					t.Error("Partition not set")
				}
				if cmd.Predicate == nil {
					t.Error("Predicate not set")
				}
			},
		},
		{
			name:    "materialize index",
			sql:     "MATERIALIZE INDEX idx IN PARTITION 5",
			context: mutation.MetadataOnlyContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.MaterializeIndex {
					t.Errorf("Type = %s, want MATERIALIZE_INDEX", cmd.Type)
				}
				if cmd.Index != "idx" {
					t.Errorf("Index = %q, want idx", cmd.Index)
				}
				if cmd.Partition == nil {
					t.Error("Partition not set")
				}
			},
		},
		{
			name:    "materialize statistic",
			sql:     "MATERIALIZE STATISTIC a, b",
			context: mutation.MetadataOnlyContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.MaterializeStatistic {
					t.Errorf("Type = %s, want MATERIALIZE_STATISTIC", cmd.Type)
				}
				if len(cmd.StatisticColumns) != 2 || cmd.StatisticColumns[0] != "a" || cmd.StatisticColumns[1] != "b" {
					t.Errorf("StatisticColumns = %v, want [a b]", cmd.StatisticColumns)
				}
			},
		},
		{
			name:    "materialize projection",
			sql:     "MATERIALIZE PROJECTION proj",
			context: mutation.MetadataOnlyContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.MaterializeProjection {
					t.Errorf("Type = %s, want MATERIALIZE_PROJECTION", cmd.Type)
				}
				if cmd.Projection != "proj" {
					t.Errorf("Projection = %q, want proj", cmd.Projection)
				}
			},
		},
		{
			name:    "materialize column",
			sql:     "MATERIALIZE COLUMN c1",
			context: mutation.MetadataOnlyContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.MaterializeColumn {
					t.Errorf("Type = %s, want MATERIALIZE_COLUMN", cmd.Type)
				}
				if cmd.Column != "c1" {
					t.Errorf("Column = %q, want c1", cmd.Column)
				}
			},
		},
		{
			name:    "materialize ttl",
			sql:     "MATERIALIZE TTL IN PARTITION 7",
			context: mutation.MetadataOnlyContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.MaterializeTTL {
					t.Errorf("Type = %s, want MATERIALIZE_TTL", cmd.Type)
				}
				if cmd.Partition == nil {
					t.Error("Partition not set")
				}
			},
		},
		{
			name:    "modify column reads column",
			sql:     "MODIFY COLUMN a Nullable(String)",
			context: mutation.MutationContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.ReadColumn {
					t.Errorf("Type = %s, want READ_COLUMN", cmd.Type)
				}
				if cmd.Column != "a" {
					t.Errorf("Column = %q, want a", cmd.Column)
				}
				if cmd.DataType == nil || cmd.DataType.Name != "Nullable" {
					t.Errorf("DataType = %v, want Nullable(String)", cmd.DataType)
				}
			},
		},
		{
			name:    "drop column",
			sql:     "DROP COLUMN a",
			context: mutation.MutationContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.DropColumn {
					t.Errorf("Type = %s, want DROP_COLUMN", cmd.Type)
				}
				if cmd.Column != "a" {
					t.Errorf("Column = %q, want a", cmd.Column)
				}
				if cmd.Clear {
					t.Error("Clear set on plain DROP COLUMN")
				}
			},
		},
		{
			name:    "clear column",
			sql:     "CLEAR COLUMN a IN PARTITION 5",
			context: mutation.MutationContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.DropColumn {
					t.Errorf("Type = %s, want DROP_COLUMN", cmd.Type)
				}
				if !cmd.Clear {
					t.Error("Clear not set")
				}
				if cmd.Partition == nil {
					t.Error("Partition not set")
				}
			},
		},
		{
			name:    "drop index",
			sql:     "DROP INDEX idx",
			context: mutation.MutationContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.DropIndex {
					t.Errorf("Type = %s, want DROP_INDEX", cmd.Type)
				}
				if cmd.Index != "idx" {
					t.Errorf("Index = %q, want idx", cmd.Index)
				}
			},
		},
		{
			name:    "clear index",
			sql:     "CLEAR INDEX idx IN PARTITION 5",
			context: mutation.MutationContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.DropIndex {
					t.Errorf("Type = %s, want DROP_INDEX", cmd.Type)
				}
				if !cmd.Clear {
					t.Error("Clear not set")
				}
			},
		},
		{
			name:    "drop statistic",
			sql:     "DROP STATISTIC a, b",
			context: mutation.MutationContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.DropStatistic {
					t.Errorf("Type = %s, want DROP_STATISTIC", cmd.Type)
				}
				if len(cmd.StatisticColumns) != 2 {
					t.Errorf("StatisticColumns = %v, want [a b]", cmd.StatisticColumns)
				}
			},
		},
		{
			name:    "drop projection",
			sql:     "DROP PROJECTION proj",
			context: mutation.MutationContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.DropProjection {
					t.Errorf("Type = %s, want DROP_PROJECTION", cmd.Type)
				}
				if cmd.Projection != "proj" {
					t.Errorf("Projection = %q, want proj", cmd.Projection)
				}
			},
		},
		{
			name:    "rename column",
			sql:     "RENAME COLUMN a TO b",
			context: mutation.MutationContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.RenameColumn {
					t.Errorf("Type = %s, want RENAME_COLUMN", cmd.Type)
				}
				if cmd.Column != "a" || cmd.RenameTo != "b" {
					t.Errorf("Column = %q, RenameTo = %q, want a, b", cmd.Column, cmd.RenameTo)
				}
			},
		},
		{
			name:    "add column is metadata only",
			sql:     "ADD COLUMN c String",
			context: mutation.MutationContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.AlterWithoutMutation {
					t.Errorf("Type = %s, want ALTER_WITHOUT_MUTATION", cmd.Type)
				}
			},
		},
		{
			name:    "drop partition is metadata only",
			sql:     "DROP PARTITION 5",
			context: mutation.MutationContext,
			check: func(t *testing.T, cmd *mutation.Command) {
				if cmd.Type != mutation.AlterWithoutMutation {
					t.Errorf("Type = %s, want ALTER_WITHOUT_MUTATION", cmd.Type)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, classify(t, tc.sql, tc.context))
		})
	}
}

// TestParseCommandContextGate verifies that the metadata-only context refuses
// to classify the mutation-pipeline-only forms.
func TestParseCommandContextGate(t *testing.T) {
	gated := []string{
		"MODIFY COLUMN a String",
		"DROP COLUMN a",
		"DROP INDEX idx",
		"DROP STATISTIC a",
		"DROP PROJECTION proj",
		"RENAME COLUMN a TO b",
	}

	for _, sql := range gated {
		t.Run(sql, func(t *testing.T) {
			cmd := classify(t, sql, mutation.MetadataOnlyContext)
			if cmd.Type != mutation.AlterWithoutMutation {
				t.Errorf("Type = %s under MetadataOnlyContext, want ALTER_WITHOUT_MUTATION", cmd.Type)
			}

			cmd = classify(t, sql, mutation.MutationContext)
			if cmd.Type == mutation.AlterWithoutMutation {
				t.Errorf("Type = ALTER_WITHOUT_MUTATION under MutationContext for %q", sql)
			}
		})
	}
}

func TestParseCommandDuplicateAssignment(t *testing.T) {
	_, err := mutation.ParseCommand(parseAlterCommand(t, "UPDATE a = 1, a = 2 WHERE x"), mutation.MutationContext)
	if !errors.Is(err, mutation.ErrMultipleAssignmentsToColumn) {
		t.Fatalf("error = %v, want ErrMultipleAssignmentsToColumn", err)
	}
}

func TestParseCommandNil(t *testing.T) {
	cmd, err := mutation.ParseCommand(nil, mutation.MutationContext)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if cmd != nil {
		t.Fatalf("cmd = %v, want nil", cmd)
	}
}

func TestIsBarrier(t *testing.T) {
	rename := classify(t, "RENAME COLUMN a TO b", mutation.MutationContext)
	if !rename.IsBarrier() {
		t.Error("RENAME_COLUMN is not a barrier")
	}

	others := []string{
		"DELETE WHERE x",
		"UPDATE a = 1 WHERE x",
		"DROP COLUMN a",
		"MATERIALIZE TTL",
		"ADD COLUMN c String",
	}
	for _, sql := range others {
		if classify(t, sql, mutation.MutationContext).IsBarrier() {
			t.Errorf("%q classified as a barrier", sql)
		}
	}
	if (&mutation.Command{Type: mutation.Empty}).IsBarrier() {
		t.Error("EMPTY command classified as a barrier")
	}
}
