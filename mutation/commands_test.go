package mutation_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sqlc-dev/doubletap/mutation"
	"github.com/sqlc-dev/doubletap/parser"
)

// parseCommands classifies a bare comma-separated ALTER command list.
func parseCommands(t *testing.T, sql string, pc mutation.ParseContext) mutation.Commands {
	t.Helper()
	cmds, err := parser.ParseAlterCommands(context.Background(), strings.NewReader(sql))
	if err != nil {
		t.Fatalf("ParseAlterCommands(%q) error: %v", sql, err)
	}
	var commands mutation.Commands
	for _, cmd := range cmds {
		command, err := mutation.ParseCommand(cmd, pc)
		if err != nil {
			t.Fatalf("ParseCommand error: %v", err)
		}
		commands = append(commands, command)
	}
	return commands
}

func encode(t *testing.T, commands mutation.Commands, withMetadata bool) string {
	t.Helper()
	var sb strings.Builder
	if err := commands.WriteText(&sb, withMetadata); err != nil {
		t.Fatalf("WriteText error: %v", err)
	}
	return sb.String()
}

func TestHasNonEmptyMutationCommands(t *testing.T) {
	tests := []struct {
		name     string
		commands mutation.Commands
		want     bool
	}{
		{
			name:     "empty list",
			commands: nil,
			want:     false,
		},
		{
			name: "only metadata and empty",
			commands: mutation.Commands{
				&mutation.Command{Type: mutation.AlterWithoutMutation},
				&mutation.Command{Type: mutation.Empty},
			},
			want: false,
		},
		{
			name: "delete among metadata",
			commands: mutation.Commands{
				&mutation.Command{Type: mutation.AlterWithoutMutation},
				&mutation.Command{Type: mutation.Delete},
			},
			want: true,
		},
		{
			name: "materialize ttl",
			commands: mutation.Commands{
				&mutation.Command{Type: mutation.MaterializeTTL},
			},
			want: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.commands.HasNonEmptyMutationCommands(); got != tc.want {
				t.Errorf("HasNonEmptyMutationCommands() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestContainsBarrierCommand(t *testing.T) {
	with := parseCommands(t, "DELETE WHERE x, RENAME COLUMN a TO b, UPDATE c = 1 WHERE x", mutation.MutationContext)
	if !with.ContainsBarrierCommand() {
		t.Error("list with RENAME COLUMN reported no barrier")
	}

	without := parseCommands(t, "DELETE WHERE x, UPDATE c = 1 WHERE x", mutation.MutationContext)
	if without.ContainsBarrierCommand() {
		t.Error("list without RENAME COLUMN reported a barrier")
	}
}

func TestWriteTextEscapes(t *testing.T) {
	commands := parseCommands(t, "DELETE WHERE name = 'ann'", mutation.MutationContext)

	got := encode(t, commands, false)
	want := `DELETE WHERE name = \'ann\'`
	if got != want {
		t.Errorf("WriteText = %q, want %q", got, want)
	}
}

func TestWriteTextDropsMetadataCommands(t *testing.T) {
	commands := parseCommands(t, "DELETE WHERE x, ADD COLUMN c String", mutation.MutationContext)

	line := encode(t, commands, false)
	if strings.Contains(line, "ADD COLUMN") {
		t.Fatalf("WriteText(false) kept a metadata-only command: %q", line)
	}

	var decoded mutation.Commands
	if err := decoded.ReadText(context.Background(), strings.NewReader(line)); err != nil {
		t.Fatalf("ReadText error: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d commands, want 1", len(decoded))
	}
	if decoded[0].Type != mutation.Delete {
		t.Errorf("decoded[0].Type = %s, want DELETE", decoded[0].Type)
	}
}

func TestRoundTripWithMetadataCommands(t *testing.T) {
	commands := parseCommands(t, "DELETE WHERE x, ADD COLUMN c String", mutation.MutationContext)

	line := encode(t, commands, true)

	var decoded mutation.Commands
	if err := decoded.ReadText(context.Background(), strings.NewReader(line)); err != nil {
		t.Fatalf("ReadText error: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d commands, want 2", len(decoded))
	}
	if decoded[0].Type != mutation.Delete {
		t.Errorf("decoded[0].Type = %s, want DELETE", decoded[0].Type)
	}
	if decoded[1].Type != mutation.AlterWithoutMutation {
		t.Errorf("decoded[1].Type = %s, want ALTER_WITHOUT_MUTATION", decoded[1].Type)
	}
	if got, want := decoded.String(), commands.String(); got != want {
		t.Errorf("decoded.String() = %q, want %q", got, want)
	}
}

func TestRoundTripMutationForms(t *testing.T) {
	sqls := []string{
		"DELETE WHERE x > 10",
		"DELETE IN PARTITION 5 WHERE x",
		"UPDATE a = 1, b = b + 1 WHERE x",
		"MATERIALIZE INDEX idx IN PARTITION 5",
		"MATERIALIZE STATISTIC a, b",
		"MATERIALIZE PROJECTION proj",
		"MATERIALIZE COLUMN c",
		"MATERIALIZE TTL",
		"MODIFY COLUMN a Nullable(String)",
		"DROP COLUMN a",
		"CLEAR COLUMN a IN PARTITION 5",
		"DROP INDEX idx",
		"DROP STATISTIC a, b",
		"DROP PROJECTION proj",
		"RENAME COLUMN a TO b",
	}

	for _, sql := range sqls {
		t.Run(sql, func(t *testing.T) {
			commands := parseCommands(t, sql, mutation.MutationContext)
			line := encode(t, commands, false)

			var decoded mutation.Commands
			if err := decoded.ReadText(context.Background(), strings.NewReader(line)); err != nil {
				t.Fatalf("ReadText(%q) error: %v", line, err)
			}
			if len(decoded) != len(commands) {
				t.Fatalf("decoded %d commands, want %d", len(decoded), len(commands))
			}
			for i := range decoded {
				if decoded[i].Type != commands[i].Type {
					t.Errorf("decoded[%d].Type = %s, want %s", i, decoded[i].Type, commands[i].Type)
				}
			}
			if got := encode(t, decoded, false); got != line {
				t.Errorf("re-encoded = %q, want %q", got, line)
			}
		})
	}
}

func TestStringIncludesMetadataCommands(t *testing.T) {
	commands := parseCommands(t, "DELETE WHERE x, ADD COLUMN c String", mutation.MutationContext)

	s := commands.String()
	if !strings.Contains(s, "ADD COLUMN") {
		t.Errorf("String() = %q, missing the metadata-only command", s)
	}
	if !strings.Contains(s, "DELETE WHERE x") {
		t.Errorf("String() = %q, missing the DELETE command", s)
	}
	if strings.Contains(s, `\'`) {
		t.Errorf("String() = %q, output is escaped", s)
	}
}

func TestReadTextAllOrNothing(t *testing.T) {
	commands := parseCommands(t, "DELETE WHERE x", mutation.MutationContext)

	if err := commands.ReadText(context.Background(), strings.NewReader("%%% not a command %%%")); err == nil {
		t.Fatal("ReadText accepted garbage input")
	}
	if len(commands) != 1 {
		t.Fatalf("list has %d commands after failed decode, want 1", len(commands))
	}
	if commands[0].Type != mutation.Delete {
		t.Errorf("commands[0].Type = %s after failed decode, want DELETE", commands[0].Type)
	}
}

func TestReadTextDepthLimit(t *testing.T) {
	line := "DELETE WHERE " + strings.Repeat("(", 600) + "x" + strings.Repeat(")", 600)

	var commands mutation.Commands
	if err := commands.ReadText(context.Background(), strings.NewReader(line)); err == nil {
		t.Fatal("ReadText accepted a pathologically nested predicate")
	}
	if len(commands) != 0 {
		t.Fatalf("list has %d commands after failed decode, want 0", len(commands))
	}
}
