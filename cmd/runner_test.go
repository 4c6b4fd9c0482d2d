package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spinsync/spinsync/internal/shared"
	tu "github.com/spinsync/spinsync/internal/testing"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	config := shared.DefaultConfig()
	config.Database.Path = ":memory:"
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
	})
	t.Cleanup(func() {
		if runner.db != nil {
			runner.db.Close()
		}
	})
	return runner, output
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output == nil {
				t.Error("expected default output to be set")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes formatted text", func(t *testing.T) {
			runner, output := newTestRunner(t)
			if err := runner.writePlainln("hello %s", "world"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.String() != "hello world\n" {
				t.Errorf("got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
			if err := runner.writePlain("hello"); err == nil {
				t.Error("expected error from failing writer")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		commands := runner.register()
		if len(commands) != 7 {
			t.Fatalf("expected 7 top-level commands, got %d", len(commands))
		}
		names := map[string]bool{}
		for _, c := range commands {
			names[c.Name] = true
		}
		for _, want := range []string{"setup", "connect", "request", "sync", "recommend", "watch", "key"} {
			if !names[want] {
				t.Errorf("missing command %q", want)
			}
		}
	})
}

func TestKeyCommand(t *testing.T) {
	t.Run("prints position and neighbors", func(t *testing.T) {
		runner, output := newTestRunner(t)
		cmd := keyCommand(runner)
		if err := cmd.Run(context.Background(), []string{"key", "A minor"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := output.String()
		if !strings.Contains(got, "8A") {
			t.Errorf("expected Camelot position 8A in %q", got)
		}
		for _, neighbor := range []string{"7A", "9A", "8B"} {
			if !strings.Contains(got, neighbor) {
				t.Errorf("expected mixable key %s in %q", neighbor, got)
			}
		}
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		runner, _ := newTestRunner(t)
		cmd := keyCommand(runner)
		if err := cmd.Run(context.Background(), []string{"key", "H sharp"}); err == nil {
			t.Error("expected error for unparseable key")
		}
	})
}

func TestWrapHour(t *testing.T) {
	cases := map[int]int{0: 12, 1: 1, 12: 12, 13: 1, 8: 8}
	for in, want := range cases {
		if got := wrapHour(in); got != want {
			t.Errorf("wrapHour(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestRequestCommands(t *testing.T) {
	runner, output := newTestRunner(t)
	cmd := requestCommand(runner)
	ctx := context.Background()

	if err := cmd.Run(ctx, []string{"request", "add", "--event", "e1", "--title", "Strobe", "--artist", "deadmau5", "--accept"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(output.String(), "accepted") {
		t.Errorf("expected accepted status in %q", output.String())
	}

	output.Reset()
	if err := cmd.Run(ctx, []string{"request", "list", "--event", "e1"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(output.String(), "deadmau5 - Strobe") {
		t.Errorf("expected request line in %q", output.String())
	}

	output.Reset()
	if err := cmd.Run(ctx, []string{"request", "list", "--event", "empty"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(output.String(), "No requests") {
		t.Errorf("expected empty message in %q", output.String())
	}

	if err := cmd.Run(ctx, []string{"request", "add", "--event", "e1", "--title", "Ghosts n Stuff", "--artist", "deadmau5"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	runner.output = &tu.LimitedWriter{MaxWrites: 1, Target: output}
	if err := cmd.Run(ctx, []string{"request", "list", "--event", "e1"}); err == nil {
		t.Error("expected error when output fails mid-list")
	}

	runner.output = output
	if err := cmd.Run(ctx, []string{"request", "accept"}); !errors.Is(err, shared.ErrMissingArgument) {
		t.Errorf("accept without id = %v, want ErrMissingArgument", err)
	}
}
