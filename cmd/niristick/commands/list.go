package commands

import (
	"github.com/spf13/cobra"

	"github.com/calbryant/niristick/pkg/protocol"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List sticky windows",
	Long: `List the ids of all sticky windows that still exist in Niri.

Staged windows are not included; use 'niristick stage --list' for those.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	return runRequest(&protocol.Request{Command: protocol.CommandList}, true)
}
