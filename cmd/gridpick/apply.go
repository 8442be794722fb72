package main

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gridpick/internal/domain"
	"gridpick/internal/gesture"
	"gridpick/internal/selection"
)

type applyFlags struct {
	sourceFlags
	script   string
	gestures []string
	all      bool
}

func newApplyCmd(root *rootFlags) *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply [file]",
		Short: "Replay a gesture script against resources without a terminal",
		Long: `Apply runs selection gestures non-interactively. Gestures come from
--script (use "-" for stdin) and then from each --gesture flag, one per line:

  single+ <id>        multi+ @<row> [id]    range+ <lo>..<hi>
  page+               all-                  clear
  remove <id>...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, root, flags, args)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.script, "script", "s", "", "Gesture script file, - for stdin")
	cmd.Flags().StringArrayVarP(&flags.gestures, "gesture", "g", nil, "Inline gesture, repeatable")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Start with everything selected")

	return cmd
}

// removalRecorder keeps the ids removed by the script for the result
type removalRecorder struct {
	*selection.Controller[domain.Resource]
	removed []string
}

func (r *removalRecorder) RemoveSelectedResources(ids []string) {
	r.removed = append(r.removed, ids...)
	r.Controller.RemoveSelectedResources(ids)
}

func runApply(cmd *cobra.Command, root *rootFlags, flags *applyFlags, args []string) error {
	steps, err := readSteps(cmd.InOrStdin(), flags)
	if err != nil {
		return err
	}

	s, err := newSession(cmd.Context(), root, &flags.sourceFlags, args, streamSink(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := checkOutput(s.cfg.Output); err != nil {
		return err
	}

	opts := []selection.Option[domain.Resource]{
		selection.WithSelected[domain.Resource](flags.selected...),
	}
	if resolver := s.resolver(); resolver != nil {
		opts = append(opts, selection.WithIDResolver(resolver))
	}
	if s.filter != nil {
		opts = append(opts, selection.WithFilter(s.filter))
	}

	target := &removalRecorder{Controller: selection.New(s.resources, opts...)}
	unsubscribe := target.Subscribe(func(c selection.Change) {
		added, removed := c.Diff()
		s.log.Debug("selection changed", map[string]any{
			"op":      string(c.Op),
			"kind":    c.Kind.String(),
			"added":   added,
			"removed": removed,
		})
	})
	defer unsubscribe()

	if flags.all {
		if err := target.Apply(selection.All, true, selection.None()); err != nil {
			return errors.Wrap(err, "select all")
		}
	}

	if err := gesture.Run(target, steps); err != nil {
		return errors.Wrap(err, "apply gestures")
	}

	return writeResult(cmd.OutOrStdout(), domain.PickResult{
		Selected:    target.SelectedIDs(),
		AllSelected: target.AllSelected(),
		Removed:     target.removed,
		Confirmed:   true,
	}, s.cfg.Output)
}

func readSteps(stdin io.Reader, flags *applyFlags) ([]gesture.Step, error) {
	var steps []gesture.Step

	if flags.script != "" {
		r := stdin
		if flags.script != "-" {
			f, err := os.Open(flags.script)
			if err != nil {
				return nil, errors.Wrap(err, "open script")
			}
			defer f.Close()
			r = f
		}
		parsed, err := gesture.ParseScript(r)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", flags.script)
		}
		steps = append(steps, parsed...)
	}

	if len(flags.gestures) > 0 {
		parsed, err := gesture.ParseScript(strings.NewReader(strings.Join(flags.gestures, "\n")))
		if err != nil {
			return nil, errors.Wrap(err, "parse --gesture")
		}
		steps = append(steps, parsed...)
	}

	if len(steps) == 0 {
		return nil, errors.New("no gestures: pass --script or --gesture")
	}
	return steps, nil
}
