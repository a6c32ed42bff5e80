package agent

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-rogue/internal/core"
)

// Response is one line written by Serve.
type Response struct {
	State     *State   `json:"state,omitempty"`
	Reactions []string `json:"reactions,omitempty"`
	Over      bool     `json:"over"`
	Error     string   `json:"error,omitempty"`
}

// Serve runs a line protocol over r and w until r is exhausted or ctx is
// done. ctx is only checked between lines, so a cancel while a read is
// blocked takes effect once the next line arrives or r is closed. Each
// request line is one of:
//
//	<key>       a single byte fed to React
//	prev        the current state
//	reset       start a new session
//	seed <n>    set the seed used by the next reset
//
// Every request is answered with one JSON Response line.
func (c *Client) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	enc := json.NewEncoder(w)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp := c.handle(sc.Text())
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("agent: cannot write response: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("agent: cannot read request: %w", err)
	}
	return nil
}

func (c *Client) handle(line string) Response {
	switch {
	case line == "prev":
		return c.response(nil)
	case line == "reset":
		return c.response(c.Reset())
	case strings.HasPrefix(line, "seed "):
		seed, err := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(line, "seed ")), 10, 64)
		if err != nil {
			return Response{Over: c.Over(), Error: fmt.Sprintf("invalid seed: %v", err)}
		}
		c.SetSeed(seed)
		return c.response(nil)
	case len(line) == 1:
		_, err := c.React(line[0])
		return c.response(err)
	default:
		return Response{Over: c.Over(), Error: fmt.Sprintf("unknown request %q", line)}
	}
}

func (c *Client) response(err error) Response {
	if err != nil {
		return Response{Over: c.Over(), Error: err.Error()}
	}
	s := c.Prev()
	return Response{State: &s, Reactions: Describe(c.prev), Over: c.Over()}
}

// Describe renders reactions as short strings such as "redraw" or
// "notify: you found a secret door".
func Describe(reactions []core.Reaction) []string {
	out := make([]string, 0, len(reactions))
	for _, r := range reactions {
		switch r := r.(type) {
		case core.Notify:
			out = append(out, "notify: "+r.Msg.String())
		case core.Redraw:
			out = append(out, "redraw")
		case core.StatusUpdated:
			out = append(out, "status_updated")
		case core.UiTransition:
			if r.State.IsMordal() {
				out = append(out, "ui_transition: "+r.State.Prompt())
			} else {
				out = append(out, "ui_transition: normal")
			}
		}
	}
	return out
}
