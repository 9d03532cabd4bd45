package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calbryant/niristick/pkg/protocol"
)

var (
	stageAll    bool
	stageList   bool
	stageActive bool
)

var stageCmd = &cobra.Command{
	Use:   "stage [window-id]",
	Short: "Park sticky windows on the stage workspace",
	Long: `Park a sticky window on the reserved stage workspace, exempting it from
sticky relocation until it is unstaged.

Exactly one target must be given: a window id, --all, --list, or --active.
--active toggles: a focused window that is already staged is unstaged back
to the current workspace instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStage,
}

func init() {
	stageCmd.Flags().BoolVar(&stageAll, "all", false, "stage every sticky window")
	stageCmd.Flags().BoolVar(&stageList, "list", false, "list staged windows")
	stageCmd.Flags().BoolVar(&stageActive, "active", false, "stage or unstage the focused window")
	stageCmd.MarkFlagsMutuallyExclusive("all", "list", "active")
	rootCmd.AddCommand(stageCmd)
}

func runStage(cmd *cobra.Command, args []string) error {
	req, err := selectorRequest(protocol.CommandStage, args, stageAll, stageList, stageActive)
	if err != nil {
		return err
	}
	return runRequest(req, req.List)
}

// selectorRequest builds a stage/unstage request from the positional id and
// selector flags, enforcing that exactly one target was given.
func selectorRequest(cmd protocol.Command, args []string, all, list, active bool) (*protocol.Request, error) {
	targets := 0
	for _, set := range []bool{len(args) > 0, all, list, active} {
		if set {
			targets++
		}
	}
	if targets != 1 {
		if cmd == protocol.CommandStage {
			return nil, fmt.Errorf("stage needs exactly one of: a window id, --all, --list, --active")
		}
		return nil, fmt.Errorf("unstage needs exactly one of: a window id, --all, --active")
	}

	req := &protocol.Request{Command: cmd, All: all, List: list, Active: active}
	if len(args) > 0 {
		id, err := parseWindowID(args[0])
		if err != nil {
			return nil, err
		}
		req.WindowID = id
		req.HasWindowID = true
	}
	return req, nil
}
