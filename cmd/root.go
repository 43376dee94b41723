package cmd

import (
	logger "github.com/ochre-sh/ochre/internal/logging"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	debug        bool
	documentPath string
	keyStore     string
	awsRegion    string
	Logger       logger.Logger

	rootCmd = &cobra.Command{
		Use:   "ochre",
		Short: "Ochre - encrypted secrets that live alongside your code.",
		Long: `Ochre stores secret values (API keys, passwords, tokens) in a plain-text
YAML document that is safe to commit. Anyone with the repository can add or
update secrets using the public key in the document; only holders of the
secret key can read them.

The secret key is supplied through the ` + "`OCHRE_SECRET`" + ` environment variable,
and ` + "`OCHRE_YAML`" + ` (or --ochre-yaml) selects a document other than the
ochre.yaml found in the current or an ancestor directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing ochre with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&documentPath, "ochre-yaml", "", "path to the secrets document (overrides OCHRE_YAML and the ancestor search)")
	rootCmd.PersistentFlags().StringVar(&keyStore, "key-store", "env", "where the secret key lives: env or aws")
	rootCmd.PersistentFlags().StringVar(&awsRegion, "aws-region", "", "AWS region for --key-store aws")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Helper functions for testing

// GetRootCmd returns the root command for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// ResetGlobalState resets all flag variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	documentPath = ""
	keyStore = "env"
	awsRegion = ""
	unmasked = false
	envFile = ""
	printStyle = "setenv"
}
