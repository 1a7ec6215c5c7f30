/*
Copyright © 2026 Tess Vale
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stablehand",
	Short: "A mount encounter and taming engine for persistent chat worlds",
	Long: `stablehand runs the mount taming loop of a persistent world:
players scout villages for wild mounts, attempt capture maneuvers,
roll the taming check, customize traits, and register the result in
their stable.

Worlds are plain directories of YAML data and JSON records, so a world
can be inspected, versioned, and hand-edited like any other project.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.stablehand.yaml)")
	rootCmd.PersistentFlags().String("worlds_dir", "", "Root directory holding world folders (default ./worlds)")
	viper.BindPFlag("worlds_dir", rootCmd.PersistentFlags().Lookup("worlds_dir"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".stablehand")
	}

	viper.SetEnvPrefix("STABLEHAND")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
