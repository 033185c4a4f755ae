package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("QUIZORA_CONFIG")
	if envConfig == "" {
		if home, err := os.UserHomeDir(); err == nil {
			envConfig = home + "/.quizora/config.yaml"
		} else {
			envConfig = "config.yaml"
		}
	}

	cmd := &cobra.Command{
		Use:   "quizora",
		Short: "Terminal client for the Quizora quiz platform",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(newSignInCmd())
	cmd.AddCommand(newSignUpCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.AddCommand(newEnterCmd())
	cmd.AddCommand(newTakeCmd())
	cmd.AddCommand(newResultCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newStubCmd())
	return cmd
}
