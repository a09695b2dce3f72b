// Command mutations parses an ALTER statement, classifies its commands into
// mutation commands, and prints the encoded mutation log line.
//
// Usage:
//
//	mutations "ALTER TABLE t DELETE WHERE x > 10"
//	echo "ALTER TABLE t UPDATE a = 1 WHERE b" | mutations
//	mutations -decode "UPDATE a = 1 WHERE b"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sqlc-dev/doubletap/ast"
	"github.com/sqlc-dev/doubletap/mutation"
	"github.com/sqlc-dev/doubletap/parser"
)

func main() {
	metadata := flag.Bool("metadata", false, "include metadata-only commands in the encoded line")
	decode := flag.Bool("decode", false, "treat input as an encoded mutation log line")
	flag.Parse()

	input := strings.Join(flag.Args(), " ")
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error reading stdin:", err)
			os.Exit(1)
		}
		input = string(data)
	}

	ctx := context.Background()

	var commands mutation.Commands
	if *decode {
		if err := commands.ReadText(ctx, strings.NewReader(input)); err != nil {
			fmt.Fprintln(os.Stderr, "Error decoding:", err)
			os.Exit(1)
		}
	} else {
		var err error
		commands, err = classify(ctx, input)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	}

	for i, cmd := range commands {
		barrier := ""
		if cmd.IsBarrier() {
			barrier = " (barrier)"
		}
		fmt.Printf("%d: %s%s\n", i, cmd.Type, barrier)
	}
	fmt.Println("has mutation work:", commands.HasNonEmptyMutationCommands())

	var sb strings.Builder
	if err := commands.WriteText(&sb, *metadata); err != nil {
		fmt.Fprintln(os.Stderr, "Error encoding:", err)
		os.Exit(1)
	}
	fmt.Println("encoded:", sb.String())
}

func classify(ctx context.Context, input string) (mutation.Commands, error) {
	stmts, err := parser.Parse(ctx, strings.NewReader(input))
	if err != nil {
		return nil, err
	}

	var commands mutation.Commands
	for _, stmt := range stmts {
		alter, ok := stmt.(*ast.AlterQuery)
		if !ok {
			return nil, fmt.Errorf("not an ALTER statement: %T", stmt)
		}
		for _, cmd := range alter.Commands {
			command, err := mutation.ParseCommand(cmd, mutation.MutationContext)
			if err != nil {
				return nil, err
			}
			commands = append(commands, command)
		}
	}
	return commands, nil
}
