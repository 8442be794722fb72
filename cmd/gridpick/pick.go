package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gridpick/internal/ui"
)

// errCancelled is returned when the picker is closed without confirming
var errCancelled = errors.New("selection cancelled")

type pickFlags struct {
	sourceFlags
	pageSize int
	hasMore  bool
}

func newPickCmd(root *rootFlags) *cobra.Command {
	flags := &pickFlags{}

	cmd := &cobra.Command{
		Use:   "pick [file]",
		Short: "Pick rows interactively and print the selected ids",
		Long: `Pick opens the resource table in the terminal. Confirm with enter to
print the selected ids on stdout; quitting prints nothing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, root, flags, args)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "Rows per page")
	cmd.Flags().BoolVar(&flags.hasMore, "has-more", false, "Treat the file as one page of a larger collection")

	return cmd
}

func runPick(cmd *cobra.Command, root *rootFlags, flags *pickFlags, args []string) error {
	s, err := newSession(cmd.Context(), root, &flags.sourceFlags, args, fileSink)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := checkOutput(s.cfg.Output); err != nil {
		return err
	}

	settings := s.cfg.UISettings
	if flags.pageSize > 0 {
		settings.PageSize = flags.pageSize
	}
	if flags.hasMore {
		settings.HasMoreItems = true
	}

	model := ui.NewModel(ui.Options{
		Resources:              s.resources,
		Columns:                s.columns(),
		IDResolver:             s.resolver(),
		Filter:                 s.filter,
		Selected:               flags.selected,
		ResourceName:           s.resourceName(),
		PageSize:               settings.PageSize,
		HasMoreItems:           settings.HasMoreItems,
		PaginatedSelectAllText: settings.PaginatedSelectAllText,
		Bus:                    s.bus,
		Log:                    s.log,
	})
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	if _, err := program.Run(); err != nil {
		return errors.Wrap(err, "run picker")
	}

	result := model.Result()
	if !result.Confirmed {
		return errCancelled
	}
	return writeResult(cmd.OutOrStdout(), result, s.cfg.Output)
}
