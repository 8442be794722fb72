// Package gesture parses selection scripts: one gesture per line, replayed
// against a selection controller by the apply command.
//
//	single+ <id>          toggle one resource on
//	multi- @<row> [<id>]  shift-click at row
//	range+ <lo>..<hi>     span over eligible rows
//	page+ | all-          bulk gestures
//	clear                 reset the selection
//	remove <id>...        drop ids after an out-of-band delete
package gesture

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"gridpick/internal/selection"
)

// Action distinguishes gestures from the two plain store operations
type Action int

const (
	ActionGesture Action = iota
	ActionClear
	ActionRemove
)

// Step is one parsed script line
type Step struct {
	Line    int
	Action  Action
	Gesture selection.Gesture
	IDs     []string // for ActionRemove
}

// Target is what a Step is replayed against
type Target interface {
	Handle(g selection.Gesture) error
	ClearSelection()
	RemoveSelectedResources(ids []string)
}

// Parse parses a single line. Comments and blank lines are rejected here;
// ParseScript skips them.
func Parse(line string) (Step, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Step{}, errors.New("empty gesture")
	}

	head := strings.ToLower(fields[0])
	args := fields[1:]

	switch head {
	case "clear":
		if len(args) != 0 {
			return Step{}, errors.New("clear takes no arguments")
		}
		return Step{Action: ActionClear}, nil
	case "remove":
		if len(args) == 0 {
			return Step{}, errors.New("remove needs at least one id")
		}
		return Step{Action: ActionRemove, IDs: args}, nil
	}

	selecting, name, err := splitSign(head)
	if err != nil {
		return Step{}, err
	}
	kind, ok := selection.ParseKind(name)
	if !ok {
		return Step{}, errors.Errorf("unknown gesture %q", name)
	}

	g := selection.Gesture{Kind: kind, Selecting: selecting}
	switch kind {
	case selection.Single:
		if len(args) != 1 {
			return Step{}, errors.New("single needs exactly one id")
		}
		g.Target = selection.ID(args[0])

	case selection.Multi:
		if len(args) == 0 || len(args) > 2 {
			return Step{}, errors.New("multi needs @<row> and an optional id")
		}
		row, err := parseRow(args[0])
		if err != nil {
			return Step{}, err
		}
		g = g.At(row)
		if len(args) == 2 {
			g.Target = selection.ID(args[1])
		}

	case selection.Range:
		if len(args) != 1 {
			return Step{}, errors.New("range needs <lo>..<hi>")
		}
		span, err := parseSpan(args[0])
		if err != nil {
			return Step{}, err
		}
		g.Target = selection.Over(span.Start, span.End)

	case selection.Page, selection.All:
		if len(args) != 0 {
			return Step{}, errors.Errorf("%s takes no arguments", kind)
		}
	}

	return Step{Action: ActionGesture, Gesture: g}, nil
}

// ParseScript parses every non-blank, non-comment line of r
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		step, err := Parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		step.Line = lineNo
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

// Run replays steps in order, stopping at the first error
func Run(target Target, steps []Step) error {
	for _, step := range steps {
		switch step.Action {
		case ActionClear:
			target.ClearSelection()
		case ActionRemove:
			target.RemoveSelectedResources(step.IDs)
		default:
			if err := target.Handle(step.Gesture); err != nil {
				return errors.Wrapf(err, "line %d", step.Line)
			}
		}
	}
	return nil
}

func splitSign(head string) (bool, string, error) {
	switch {
	case strings.HasSuffix(head, "+"):
		return true, strings.TrimSuffix(head, "+"), nil
	case strings.HasSuffix(head, "-"):
		return false, strings.TrimSuffix(head, "-"), nil
	}
	return false, "", errors.Errorf("gesture %q needs a + or - suffix", head)
}

func parseRow(s string) (int, error) {
	if !strings.HasPrefix(s, "@") {
		return 0, errors.Errorf("row %q must start with @", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 0 {
		return 0, errors.Errorf("invalid row %q", s)
	}
	return row, nil
}

func parseSpan(s string) (selection.Span, error) {
	lo, hi, ok := strings.Cut(s, "..")
	if !ok {
		return selection.Span{}, errors.Errorf("invalid range %q", s)
	}
	start, err := strconv.Atoi(lo)
	if err != nil {
		return selection.Span{}, errors.Errorf("invalid range start %q", lo)
	}
	end, err := strconv.Atoi(hi)
	if err != nil {
		return selection.Span{}, errors.Errorf("invalid range end %q", hi)
	}
	return selection.Span{Start: start, End: end}, nil
}
