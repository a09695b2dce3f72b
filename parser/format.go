package parser

import (
	"strings"

	"github.com/sqlc-dev/doubletap/ast"
	"github.com/sqlc-dev/doubletap/internal/format"
)

// Format returns the SQL string representation of the statements.
func Format(stmts []ast.Statement) string {
	return format.Format(stmts)
}

// FormatAlterCommands returns the single-line SQL rendering of a bare ALTER
// command list, without the ALTER TABLE clause. The output parses back with
// ParseAlterCommands.
func FormatAlterCommands(cmds []*ast.AlterCommand) string {
	var sb strings.Builder
	format.AlterCommands(&sb, cmds)
	return sb.String()
}
