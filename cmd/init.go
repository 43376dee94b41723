package cmd

import (
	"fmt"
	"os"

	"github.com/ochre-sh/ochre/internal/secrets"
	"github.com/ochre-sh/ochre/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Creates a new secrets document and keypair",
	Long: `Generates a fresh keypair and writes an empty secrets document.

The public key is stored in the document; the secret key is printed exactly
once and never written anywhere by ochre. With --key-store aws the secret key
is additionally stored in AWS Secrets Manager under a name derived from the
public key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDocumentPath(true)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve document path: %v", err)
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Fprint(cmd.OutOrStdout(), ui.Error.Sprint("✗")+" A secrets document already exists at "+ui.Path.Sprint(path)+"\n"+
				ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("ochre encrypt")+" to add secrets to it\n")
			return nil
		} else if !os.IsNotExist(err) {
			return Logger.ErrorfAndReturn("failed to check for existing document at %s: %v", path, err)
		}

		// Banner and key material go to stderr; stdout stays eval-able.
		figure.Write(os.Stderr, figure.NewFigure("ochre", "", true))
		fmt.Fprintln(os.Stderr)

		Logger.Debugf("Generating keypair")
		pub, key, err := secrets.GenerateKeyPair()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to generate keypair: %v", err)
		}

		doc := secrets.NewDocument(pub)
		if err := doc.SaveFile(path); err != nil {
			return Logger.ErrorfAndReturn("failed to write secrets document: %v", err)
		}
		Logger.Infof("Wrote empty secrets document to %s", path)

		if keyStore == "aws" {
			if awsRegion == "" {
				return Logger.ErrorfAndReturn("--key-store aws requires --aws-region")
			}
			arn, err := secrets.SaveSecretKeyToAWS(cmd.Context(), awsRegion, pub, key)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to store secret key in AWS: %v", err)
			}
			fmt.Fprintln(os.Stderr, ui.Success.Sprint("✓")+" Secret key stored in AWS Secrets Manager with ARN "+arn)
		}

		// The one and only time the secret key leaves the process.
		fmt.Fprintln(os.Stderr, "Your secret key is: "+key.Hex())
		fmt.Fprintln(os.Stderr, ui.Warning.Sprint("Save this key immediately! If you lose it, you lose access to your secrets."))
		fmt.Fprintln(os.Stderr, "Recommendation: keep it in a password manager")
		fmt.Fprintln(os.Stderr, "If you're using this for CI, add it to your CI configuration as a secret environment variable")
		fmt.Fprintf(cmd.OutOrStdout(), "export %s=%s\n", secrets.SecretKeyEnv, key.Hex())
		return nil
	},
}
