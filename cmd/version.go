package cmd

import (
	"fmt"

	"github.com/micbed86/FancyNote-sub000/internal/app"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("version:    %s\n", app.Version)
		if app.GitTag != "" {
			fmt.Printf("git tag:    %s\n", app.GitTag)
		}
		if app.BuildTime != "" {
			fmt.Printf("build time: %s\n", app.BuildTime)
		}
	},
}
