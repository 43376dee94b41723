package cmd

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/spf13/cobra"
)

// generatedSecretBytes is the entropy of a generated secret; rendered as hex
// it becomes a 64-character value.
const generatedSecretBytes = 32

var generateCmd = &cobra.Command{
	Use:   "generate NAME",
	Short: "Generates a strong random secret and stores it",
	Long: `Draws 32 bytes from the OS random source, hex-encodes them, and stores the
result as NAME exactly as if it had been passed to encrypt. The generated
value is printed once so it can be handed to the consuming service.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validateSecretName(name); err != nil {
			return Logger.ErrorfAndReturn("invalid secret name %q: %v", name, err)
		}

		raw := make([]byte, generatedSecretBytes)
		if _, err := rand.Read(raw); err != nil {
			return Logger.ErrorfAndReturn("failed to generate random value: %v", err)
		}
		value := hex.EncodeToString(raw)

		return upsertSecret(name, value, true)
	},
}
