package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	workDir    = ".cukelive"
	configPath = ".cukelive/config.yml"
	dbPath     = ".cukelive/registry.db"
)

var rootCmd = &cobra.Command{
	Use:   "cukelive",
	Short: "Run cucumber features and track progress live",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
