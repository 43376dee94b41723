package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ochre-sh/ochre/internal/secrets"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var printStyle string

func init() {
	printCmd.Flags().StringVar(&printStyle, "style", "setenv", "output style: setenv, json, or yaml")
}

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Decrypts and prints every secret",
	Long: `Decrypts all secrets with the key from OCHRE_SECRET and prints them to
stdout. The default setenv style can be evaluated directly by a shell:

  eval "$(ochre print)"

If any single record fails to decrypt the whole command fails; partial output
is never produced.`,
	Args: cobra.NoArgs,
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

		return renderPairs(cmd.OutOrStdout(), pairs, printStyle)
	},
}

// renderPairs writes the decrypted pairs in the requested style, preserving
// document order.
func renderPairs(w io.Writer, pairs []secrets.Pair, style string) error {
	switch style {
	case "setenv":
		for _, p := range pairs {
			if _, err := fmt.Fprintf(w, "export %s=%q\n", p.Name, p.Value); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pairs)
	case "yaml":
		data, err := yaml.MarshalWithOptions(pairs, yaml.IndentSequence(true))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown print style %q (expected setenv, json, or yaml)", style)
	}
}
