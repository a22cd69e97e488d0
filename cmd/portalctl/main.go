// Command portalctl runs the NewsPulse portal utilities from a terminal:
// summary parsing, scrap browsing and unscrap, and briefing requests.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message)
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{ctx: ctx, in: stdin, out: stdout, errOut: stderr}

	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "portalctl"

	commands := []struct {
		name, short string
		data        any
	}{
		{"summary", "Split a tagged summary into sections", &summaryCommand{app: a}},
		{"scraps", "List the member's scraps", &scrapsCommand{app: a}},
		{"unscrap", "Remove a scrap", &unscrapCommand{app: a}},
		{"brief-text", "Request a briefing delivery by text", &briefTextCommand{app: a}},
		{"brief-voice", "Request a briefing delivery with a recording", &briefVoiceCommand{app: a}},
		{"schedules", "List registered briefing deliveries", &schedulesCommand{app: a}},
		{"token", "Issue a gateway access token for the member", &tokenCommand{app: a}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, "", c.data); err != nil {
			return err
		}
	}

	_, err := parser.ParseArgs(args)
	return err
}
