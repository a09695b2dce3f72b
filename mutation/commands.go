package mutation

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sqlc-dev/doubletap/ast"
	"github.com/sqlc-dev/doubletap/parser"
)

// Commands is the ordered list of mutation commands carried by a single
// ALTER statement.
type Commands []*Command

// alterCommands collects the syntax nodes to re-render. Metadata-only
// commands are included only on request.
func (c Commands) alterCommands(withPureMetadataCommands bool) []*ast.AlterCommand {
	var cmds []*ast.AlterCommand
	for _, command := range c {
		if command.Type != AlterWithoutMutation || withPureMetadataCommands {
			cmds = append(cmds, command.cmd)
		}
	}
	return cmds
}

// WriteText writes the command list as one escaped line, safe to store as a
// field in a line-oriented mutation log. Metadata-only commands are dropped
// unless withPureMetadataCommands is set; they change no data, so the log
// does not need them back.
func (c Commands) WriteText(w io.Writer, withPureMetadataCommands bool) error {
	text := parser.FormatAlterCommands(c.alterCommands(withPureMetadataCommands))
	_, err := io.WriteString(w, escapeString(text))
	return err
}

// ReadText decodes a line written by WriteText, appending the decoded
// commands. Decoding is all or nothing: on any error the list is left
// unchanged. Commands are always reclassified under MutationContext,
// regardless of the context the list was produced in.
func (c *Commands) ReadText(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	text, err := unescapeString(string(data))
	if err != nil {
		return err
	}

	cmds, err := parser.ParseAlterCommands(ctx, strings.NewReader(text))
	if err != nil {
		return err
	}

	decoded := make(Commands, 0, len(cmds))
	for _, cmd := range cmds {
		command, err := ParseCommand(cmd, MutationContext)
		if err != nil {
			return err
		}
		if command == nil {
			return fmt.Errorf("%w: %s", ErrUnknownMutationCommand, cmd.Type)
		}
		decoded = append(decoded, command)
	}

	*c = append(*c, decoded...)
	return nil
}

// String renders the full command list unescaped, including metadata-only
// commands. Diagnostic only; the output is not meant to be decoded.
func (c Commands) String() string {
	return parser.FormatAlterCommands(c.alterCommands(true))
}

// HasNonEmptyMutationCommands reports whether the list contains any command
// that actually rewrites data.
func (c Commands) HasNonEmptyMutationCommands() bool {
	for _, command := range c {
		if command.Type != Empty && command.Type != AlterWithoutMutation {
			return true
		}
	}
	return false
}

// ContainsBarrierCommand reports whether any command in the list is a
// barrier.
func (c Commands) ContainsBarrierCommand() bool {
	for _, command := range c {
		if command.IsBarrier() {
			return true
		}
	}
	return false
}
