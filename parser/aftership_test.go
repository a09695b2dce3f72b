package parser_test

import (
	"context"
	"strings"
	"testing"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"

	"github.com/sqlc-dev/doubletap/parser"
)

// TestAfterShipAcceptsRenderedAlter re-renders parsed ALTER command lists and
// checks the AfterShip parser accepts the output as part of a full ALTER
// statement. This catches rendering drift that our own round-trip tests
// cannot see. Limited to the command forms the AfterShip grammar covers.
func TestAfterShipAcceptsRenderedAlter(t *testing.T) {
	lists := []string{
		"ADD COLUMN c String",
		"ADD COLUMN IF NOT EXISTS c Nullable(String) AFTER b",
		"ADD INDEX idx x TYPE set(100) GRANULARITY 1",
		"DROP COLUMN a",
		"DROP INDEX idx",
		"MODIFY COLUMN a Nullable(String)",
		"RENAME COLUMN a TO b",
		"DROP PARTITION 5",
		"DETACH PARTITION 5",
		"ATTACH PARTITION 5",
		"DROP COLUMN a, DROP INDEX idx",
	}

	for _, list := range lists {
		t.Run(list, func(t *testing.T) {
			cmds, err := parser.ParseAlterCommands(context.Background(), strings.NewReader(list))
			if err != nil {
				t.Fatalf("ParseAlterCommands error: %v", err)
			}
			query := "ALTER TABLE t " + parser.FormatAlterCommands(cmds)

			stmts, err := aftership.NewParser(query).ParseStmts()
			if err != nil {
				t.Fatalf("AfterShip parse error: %v\nQuery: %s", err, query)
			}
			if len(stmts) == 0 {
				t.Fatalf("AfterShip parser returned no statements\nQuery: %s", query)
			}
		})
	}
}
