package main

import (
	_ "embed"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/polyglotkit/polyglot/cmd"
	"github.com/polyglotkit/polyglot/utils"
)

var logger = logrus.New()

//go:embed version.txt
var version string

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Polyglot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "polyglot",
		Short: "Polyglot is a natural language detection service",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				utils.SetVerbose()
			}
		},
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	commands := []*cobra.Command{
		cmd.NewServerCommand(),
		cmd.NewDetectCommand(),
		cmd.NewLanguagesCommand(),
		cmd.NewMcpCommand(),
		versionCommand,
	}
	for _, command := range commands {
		rootCmd.AddCommand(command)
	}
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Fatal("Failed to execute command")
	}
}
