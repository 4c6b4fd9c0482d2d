package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/spinsync/spinsync/internal/camelot"
	"github.com/spinsync/spinsync/internal/shared"
)

// Key converts a musical key to its Camelot position and lists the
// harmonically mixable neighbors.
func (r *Runner) Key(ctx context.Context, cmd *cli.Command) error {
	input := cmd.StringArg("key")
	if input == "" {
		return fmt.Errorf("%w: key, e.g. `spinsync key \"A minor\"` or `spinsync key 8A`", shared.ErrMissingArgument)
	}

	pos, ok := camelot.Parse(input)
	if !ok {
		return fmt.Errorf("unrecognized key %q", input)
	}

	neighbors := []camelot.Position{
		{Number: wrapHour(pos.Number - 1), Ring: pos.Ring},
		{Number: wrapHour(pos.Number + 1), Ring: pos.Ring},
		{Number: pos.Number, Ring: otherRing(pos.Ring)},
	}
	codes := make([]string, len(neighbors))
	for i, n := range neighbors {
		codes[i] = n.String()
	}

	if err := r.writePlainln("%s is Camelot %s", input, pos.String()); err != nil {
		return err
	}
	return r.writePlainln("Mixes cleanly with %s", strings.Join(codes, ", "))
}

// wrapHour keeps wheel positions in 1..12, wrapping like a clock face.
func wrapHour(n int) int {
	return (n+11)%12 + 1
}

func otherRing(ring camelot.Ring) camelot.Ring {
	if ring == camelot.RingMinor {
		return camelot.RingMajor
	}
	return camelot.RingMinor
}
