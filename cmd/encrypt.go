package cmd

import (
	"encoding/hex"

	"github.com/ochre-sh/ochre/internal/secrets"
	"github.com/ochre-sh/ochre/internal/ui"
	"github.com/ochre-sh/ochre/internal/utils"

	"github.com/spf13/cobra"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt NAME [VALUE]",
	Short: "Adds or updates an encrypted secret",
	Long: `Encrypts VALUE under the document's public key and stores it as NAME.

When VALUE is omitted it is read from piped stdin, which keeps the plaintext
out of your shell history. If the value is unchanged from what is already
stored, the document is not rewritten at all.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validateSecretName(name); err != nil {
			return Logger.ErrorfAndReturn("invalid secret name %q: %v", name, err)
		}

		var value string
		if len(args) == 2 {
			value = args[1]
		} else {
			data, err := utils.ReadStdin()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read secret value: %v", err)
			}
			value = string(data)
		}

		return upsertSecret(name, value, false)
	},
}

// upsertSecret runs the shared encrypt/generate path: load, set, report
// status, and save only when something actually changed.
func upsertSecret(name, value string, echoValue bool) error {
	path, doc, err := loadDocument()
	if err != nil {
		return Logger.ErrorfAndReturn("%v", err)
	}

	spinner, cleanup := startSpinner("Encrypting secret...", verbose)
	defer cleanup()

	status, err := doc.Set(name, value)
	if err != nil {
		return Logger.ErrorfAndReturn("%v", err)
	}

	digest := secrets.HashValue([]byte(value))
	digestHex := hex.EncodeToString(digest[:])

	switch status {
	case secrets.StatusUnchanged:
		// Re-encrypting would only churn ciphertext; leave the file untouched.
		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + name + " unchanged (sha256 " + digestHex + "), document not rewritten"
		return nil
	case secrets.StatusOverwritten:
		Logger.Warnf("Overwriting existing value for %s; the old value is only recoverable from version control history", name)
	}

	if err := doc.SaveFile(path); err != nil {
		return Logger.ErrorfAndReturn("%v", err)
	}

	msg := ui.Success.Sprint("✓") + " " + name + " " + string(status) + " (sha256 " + digestHex + ")"
	if echoValue {
		msg += "\n" + name + "=" + value
	}
	spinner.FinalMSG = msg
	return nil
}
