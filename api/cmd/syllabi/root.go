package syllabi

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var Fatal = FatalErrorHandler

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   getCommandLineExecutable(),
		Short: "Syllabi",
		Long:  `Chatbot skill execution and tool selection`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			setupLogging(logLevel)
		},
	}

	rootCmd.PersistentFlags().String("log-level", getDefaultServeOptionString("LOG_LEVEL", "info"), "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newSkillsCmd())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func Execute() {
	rootCmd := NewRootCmd()
	rootCmd.SetContext(context.Background())
	rootCmd.SetOut(os.Stdout)

	if err := rootCmd.Execute(); err != nil {
		Fatal(rootCmd, err.Error(), 1)
	}
}
