package commands

import (
	"github.com/spf13/cobra"

	"github.com/calbryant/niristick/pkg/protocol"
)

var (
	unstageAll    bool
	unstageActive bool
)

var unstageCmd = &cobra.Command{
	Use:   "unstage [window-id]",
	Short: "Bring staged windows back to the current workspace",
	Long: `Move a staged window to the currently active workspace and make it
sticky again.

Exactly one target must be given: a window id, --all, or --active.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUnstage,
}

func init() {
	unstageCmd.Flags().BoolVar(&unstageAll, "all", false, "unstage every staged window")
	unstageCmd.Flags().BoolVar(&unstageActive, "active", false, "unstage the focused window")
	unstageCmd.MarkFlagsMutuallyExclusive("all", "active")
	rootCmd.AddCommand(unstageCmd)
}

func runUnstage(cmd *cobra.Command, args []string) error {
	req, err := selectorRequest(protocol.CommandUnstage, args, unstageAll, false, unstageActive)
	if err != nil {
		return err
	}
	return runRequest(req, false)
}
