package commands

import (
	"github.com/spf13/cobra"

	"github.com/calbryant/niristick/pkg/protocol"
)

var toggleActiveCmd = &cobra.Command{
	Use:   "toggle-active",
	Short: "Toggle sticky for the focused window",
	Long: `Toggle sticky membership for the currently focused window.

Handy as a compositor keybinding:

  Mod+S { spawn "niristick" "toggle-active"; }`,
	Args: cobra.NoArgs,
	RunE: runToggleActive,
}

func init() {
	rootCmd.AddCommand(toggleActiveCmd)
}

func runToggleActive(cmd *cobra.Command, args []string) error {
	return runRequest(&protocol.Request{Command: protocol.CommandToggleActive}, false)
}
