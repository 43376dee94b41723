package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/ochre-sh/ochre/internal/mask"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	unmasked bool
	envFile  string
)

func init() {
	execCmd.Flags().BoolVar(&unmasked, "unmasked", false, "disable masking of secret values in the child's output")
	execCmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file with additional plain variables for the child")
}

var execCmd = &cobra.Command{
	Use:   "exec -- COMMAND [ARGS...]",
	Short: "Runs a command with all secrets in its environment",
	Long: `Decrypts every secret and runs COMMAND with the name=value pairs added to
its environment. The child's stdout and stderr are scanned as they arrive and
every occurrence of a secret value is replaced with a placeholder, so secrets
cannot leak into logs or terminals. Pass --unmasked to forward output
verbatim.

The exit status of ochre mirrors the child's exit status.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, doc, err := loadDocument()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		key, err := loadSecretKey(cmd.Context(), doc)
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		pairs, err := doc.DecryptAll(key)
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		env := os.Environ()
		if envFile != "" {
			extra, err := godotenv.Read(envFile)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read env file %s: %v", envFile, err)
			}
			for k, v := range extra {
				env = append(env, k+"="+v)
			}
		}
		for _, p := range pairs {
			Logger.Debugf("Setting env var in child process: %s", p.Name)
			env = append(env, p.Name+"="+p.Value)
		}

		child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
		child.Env = env
		child.Stdin = os.Stdin

		var code int
		if unmasked {
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr
			code, err = runUnmasked(child)
		} else {
			values := make([]string, 0, len(pairs))
			for _, p := range pairs {
				values = append(values, p.Value)
			}
			code, err = mask.Run(child, values, os.Stdout, os.Stderr)
		}
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}
		if code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

func runUnmasked(child *exec.Cmd) (int, error) {
	err := child.Run()
	if child.ProcessState != nil {
		if code := child.ProcessState.ExitCode(); code != 0 {
			return code, nil
		}
	}
	if err != nil {
		return -1, fmt.Errorf("failed to run %s: %w", child.Path, err)
	}
	return 0, nil
}
