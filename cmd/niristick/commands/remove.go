package commands

import (
	"github.com/spf13/cobra"

	"github.com/calbryant/niristick/pkg/protocol"
)

var removeCmd = &cobra.Command{
	Use:   "remove <window-id>",
	Short: "Unmark a sticky window",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseWindowID(args[0])
	if err != nil {
		return err
	}
	return runRequest(&protocol.Request{
		Command:     protocol.CommandRemove,
		WindowID:    id,
		HasWindowID: true,
	}, false)
}
