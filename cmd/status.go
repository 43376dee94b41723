package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Lists secret names and their content hashes",
	Long: `Lists every secret's name alongside the SHA-256 digest of its plaintext.
No decryption takes place, so no secret key is needed; the digests let you
compare a value against what is stored without revealing either.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, doc, err := loadDocument()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		Logger.Infof("Document %s holds %d secrets", path, doc.Len())
		for _, r := range doc.Records() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hex.EncodeToString(r.Digest[:]), r.Name)
		}
		return nil
	},
}
