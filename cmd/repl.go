/*
Copyright © 2026 Tess Vale
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/tessvale/stablehand/internal/game"
	"github.com/tessvale/stablehand/internal/world"

	"github.com/spf13/cobra"
)

var replUserID string

var replCmd = &cobra.Command{
	Use:   "repl [world_name]",
	Short: "Start the interactive REPL shell",
	Long: `Starts the read-eval-print loop for scouting, capturing, and taming
mounts in a world.
Usage:
	> explore Meadowbrook by: Lina`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		worldName := requireWorldArg(args)

		manager := world.NewManager(worldsDir())

		app, err := game.NewSession(manager, worldName, time.Now().UnixNano())
		if err != nil {
			fmt.Printf("Failed to bootstrap game session: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		fmt.Printf("Starting REPL for '%s'...\nType 'exit' or 'quit' to leave.\n\n", worldName)

		maybeStartBot(app, manager, worldName)

		if err := RunTUI(app, worldName, replUserID); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVarP(&replUserID, "user", "u", "local", "User id to act as in this shell")
}
