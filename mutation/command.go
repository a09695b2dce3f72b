// Package mutation classifies parsed ALTER commands into typed mutation
// commands and encodes ordered command lists for mutation log entries.
package mutation

import (
	"fmt"

	"github.com/sqlc-dev/doubletap/ast"
)

// CommandType identifies the kind of background work a command represents.
type CommandType string

const (
	Empty                 CommandType = "EMPTY"
	Delete                CommandType = "DELETE"
	Update                CommandType = "UPDATE"
	MaterializeIndex      CommandType = "MATERIALIZE_INDEX"
	MaterializeStatistic  CommandType = "MATERIALIZE_STATISTIC"
	MaterializeProjection CommandType = "MATERIALIZE_PROJECTION"
	MaterializeColumn     CommandType = "MATERIALIZE_COLUMN"
	MaterializeTTL        CommandType = "MATERIALIZE_TTL"
	ReadColumn            CommandType = "READ_COLUMN"
	DropColumn            CommandType = "DROP_COLUMN"
	DropIndex             CommandType = "DROP_INDEX"
	DropStatistic         CommandType = "DROP_STATISTIC"
	DropProjection        CommandType = "DROP_PROJECTION"
	RenameColumn          CommandType = "RENAME_COLUMN"
	AlterWithoutMutation  CommandType = "ALTER_WITHOUT_MUTATION"
)

// ParseContext selects which ALTER forms classify as mutation work.
//
// MutationContext is the live mutation pipeline: MODIFY/DROP/RENAME forms
// become READ_COLUMN, DROP_*, RENAME_COLUMN commands. MetadataOnlyContext is
// metadata bookkeeping over arbitrary ALTER statements: those same forms
// classify as ALTER_WITHOUT_MUTATION instead.
type ParseContext int

const (
	MetadataOnlyContext ParseContext = iota
	MutationContext
)

// Command is one unit of mutation work. The populated fields are determined
// by Type; a Command is immutable once constructed.
type Command struct {
	Type CommandType

	// Predicate restricts DELETE/UPDATE to matching rows.
	Predicate ast.Expression

	// Partition restricts the command to one partition.
	Partition ast.Expression

	// ColumnToUpdateExpression holds UPDATE assignments. Keys are unique
	// within one command.
	ColumnToUpdateExpression map[string]ast.Expression

	Column           string
	RenameTo         string
	Index            string
	Projection       string
	StatisticColumns []string

	// DataType is the column type a READ_COLUMN command rewrites to.
	DataType *ast.DataType

	// Clear is set when the command clears materialized data for a
	// partition instead of rewriting it.
	Clear bool

	// cmd is the originating syntax node, retained only so the command can
	// be re-rendered for persistence.
	cmd *ast.AlterCommand
}

// IsBarrier reports whether the command must not be reordered or merged with
// surrounding commands. A column rename changes the identity later commands
// reference, so execution has to fence around it.
func (c *Command) IsBarrier() bool {
	return c.Type == RenameColumn
}

// ParseCommand classifies one parsed ALTER command. It returns nil without
// an error only when cmd itself is nil; every recognized ALTER form
// classifies, with non-mutating forms falling through to
// ALTER_WITHOUT_MUTATION.
func ParseCommand(cmd *ast.AlterCommand, pc ParseContext) (*Command, error) {
	if cmd == nil {
		return nil, nil
	}

	switch {
	case cmd.Type == ast.AlterDeleteWhere:
		return &Command{
			Type:      Delete,
			Predicate: cmd.Where,
			Partition: cmd.Partition,
			cmd:       cmd,
		}, nil
	case cmd.Type == ast.AlterUpdate:
		res := &Command{
			Type:                     Update,
			Predicate:                cmd.Where,
			Partition:                cmd.Partition,
			ColumnToUpdateExpression: make(map[string]ast.Expression, len(cmd.Assignments)),
			cmd:                      cmd,
		}
		for _, a := range cmd.Assignments {
			if _, ok := res.ColumnToUpdateExpression[a.Column]; ok {
				return nil, fmt.Errorf("%w `%s`", ErrMultipleAssignmentsToColumn, a.Column)
			}
			res.ColumnToUpdateExpression[a.Column] = a.Value
		}
		return res, nil
	case cmd.Type == ast.AlterMaterializeIndex:
		return &Command{
			Type:      MaterializeIndex,
			Partition: cmd.Partition,
			Index:     cmd.Index,
			cmd:       cmd,
		}, nil
	case cmd.Type == ast.AlterMaterializeStatistic:
		return &Command{
			Type:             MaterializeStatistic,
			Partition:        cmd.Partition,
			StatisticColumns: cmd.StatisticColumns,
			cmd:              cmd,
		}, nil
	case cmd.Type == ast.AlterMaterializeProjection:
		return &Command{
			Type:       MaterializeProjection,
			Partition:  cmd.Partition,
			Projection: cmd.Projection,
			cmd:        cmd,
		}, nil
	case cmd.Type == ast.AlterMaterializeColumn:
		return &Command{
			Type:      MaterializeColumn,
			Partition: cmd.Partition,
			Column:    cmd.ColumnName,
			cmd:       cmd,
		}, nil
	case cmd.Type == ast.AlterMaterializeTTL:
		return &Command{
			Type:      MaterializeTTL,
			Partition: cmd.Partition,
			cmd:       cmd,
		}, nil
	case pc == MutationContext && cmd.Type == ast.AlterModifyColumn:
		res := &Command{
			Type: ReadColumn,
			cmd:  cmd,
		}
		if cmd.Column != nil {
			res.Column = cmd.Column.Name
			res.DataType = cmd.Column.Type
		}
		return res, nil
	case pc == MutationContext && cmd.Type == ast.AlterDropColumn:
		return &Command{
			Type:      DropColumn,
			Column:    cmd.ColumnName,
			Partition: cmd.Partition,
			Clear:     cmd.Clear,
			cmd:       cmd,
		}, nil
	case pc == MutationContext && cmd.Type == ast.AlterDropIndex:
		return &Command{
			Type:      DropIndex,
			Index:     cmd.Index,
			Partition: cmd.Partition,
			Clear:     cmd.Clear,
			cmd:       cmd,
		}, nil
	case pc == MutationContext && cmd.Type == ast.AlterDropStatistic:
		return &Command{
			Type:             DropStatistic,
			StatisticColumns: cmd.StatisticColumns,
			Partition:        cmd.Partition,
			Clear:            cmd.Clear,
			cmd:              cmd,
		}, nil
	case pc == MutationContext && cmd.Type == ast.AlterDropProjection:
		return &Command{
			Type:       DropProjection,
			Projection: cmd.Projection,
			Partition:  cmd.Partition,
			Clear:      cmd.Clear,
			cmd:        cmd,
		}, nil
	case pc == MutationContext && cmd.Type == ast.AlterRenameColumn:
		return &Command{
			Type:     RenameColumn,
			Column:   cmd.ColumnName,
			RenameTo: cmd.NewName,
			cmd:      cmd,
		}, nil
	default:
		// A recognized ALTER form that needs no data rewrite.
		return &Command{
			Type: AlterWithoutMutation,
			cmd:  cmd,
		}, nil
	}
}
