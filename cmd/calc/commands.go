package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-chi-calculator/internal/keymap"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/tui"
)

func newRootCmd() *cobra.Command {
	var logFile string

	root := &cobra.Command{
		Use:           "calc",
		Short:         "Terminal calculator",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logFile == "" {
				return nil
			}
			if err := observability.InitFileLogger(logFile); err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.SyncLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		},
	}

	root.PersistentFlags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")

	root.AddCommand(newTUICmd(), newEvalCmd())
	return root
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		},
	}
}

func newEvalCmd() *cobra.Command {
	var showState bool

	cmd := &cobra.Command{
		Use:   "eval <keys>...",
		Short: "Replay a key sequence and print the display value",
		Long: `Replays the given keys on a fresh calculator, exactly as if they were typed:
digits, "." or ",", + - * /, "=" and "c". Arguments are joined, so
"calc eval 1 + 2 =" and "calc eval 1+2=" are equivalent.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := keymap.Replay(strings.Join(args, ""))

			if showState {
				fmt.Fprintf(cmd.OutOrStdout(), "entry=%q accumulated=%q pending=%q phase=%s\n",
					state.Entry, state.Accumulated, state.Pending, state.Phase())
			}
			fmt.Fprintln(cmd.OutOrStdout(), state.Display())
			return nil
		},
	}

	cmd.Flags().BoolVar(&showState, "state", false, "also print the full calculator state")
	return cmd
}
