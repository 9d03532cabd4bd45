package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// socketFlag is the --socket override for the daemon control socket.
var socketFlag string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "niristick",
	Short: "niristick - sticky windows for the Niri compositor",
	Long: `niristick manages sticky windows for the Niri compositor.

A sticky window follows you to whatever workspace you activate. A staged
window is parked on the reserved stage workspace and temporarily exempt
from sticky relocation until you unstage it.

Every command talks to a running niristickd daemon over its unix socket.`,
	SilenceUsage: true,
	Version:      version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "",
		"path to the niristickd control socket (default: $XDG_RUNTIME_DIR/niristick.sock)")
}
