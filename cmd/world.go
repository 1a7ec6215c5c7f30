/*
Copyright © 2026 Tess Vale
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/tessvale/stablehand/internal/world"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// worldCmd represents the world command
var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Manage world directories and their records",
	Long: `The world command manipulates the directories that hold a world's
species and village data, the in-flight encounter documents, the mount
stable, the character ledger, and the audit log.

Use subcommands 'create', 'character', and 'telegram' to scaffold and
configure a world.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("world called")
	},
}

// worldsDir resolves the root directory that holds world folders.
func worldsDir() string {
	dir := viper.GetString("worlds_dir")
	if dir == "" {
		dir = "./worlds"
	}
	return dir
}

// requireWorldArg resolves the world name from args or exits.
func requireWorldArg(args []string) string {
	if len(args) < 1 || args[0] == "" {
		fmt.Println("Error: must specify [world_name]")
		os.Exit(1)
	}
	return args[0]
}

// createCmd represents the world create command
var createCmd = &cobra.Command{
	Use:   "create [world_name]",
	Short: "Create the directory structure for a new world",
	Long: `Bootstraps the standard world layout under worlds/<world_name>:
data directories for species and villages, the encounters and mounts
stores, the character ledger, and an empty audit log location.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		worldName := requireWorldArg(args)

		manager := world.NewManager(worldsDir())
		if err := manager.Create(worldName); err != nil {
			fmt.Printf("Error creating world: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Successfully created world!\n")
		fmt.Printf("World directory: %s\n", manager.WorldPath(worldName))
	},
}

func init() {
	rootCmd.AddCommand(worldCmd)
	worldCmd.AddCommand(createCmd)
}
