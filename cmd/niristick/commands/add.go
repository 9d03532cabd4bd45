package commands

import (
	"github.com/spf13/cobra"

	"github.com/calbryant/niristick/pkg/protocol"
)

var addCmd = &cobra.Command{
	Use:   "add <window-id>",
	Short: "Mark a window as sticky",
	Long: `Mark a window as sticky so it follows you across workspace switches.

The window id must be one Niri currently knows; run 'niri msg --json windows'
to look ids up.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	id, err := parseWindowID(args[0])
	if err != nil {
		return err
	}
	return runRequest(&protocol.Request{
		Command:     protocol.CommandAdd,
		WindowID:    id,
		HasWindowID: true,
	}, false)
}
