package cmd

import (
	"github.com/ochre-sh/ochre/internal/ui"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Removes a secret from the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validateSecretName(name); err != nil {
			return Logger.ErrorfAndReturn("invalid secret name %q: %v", name, err)
		}

		path, doc, err := loadDocument()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Removing secret...", verbose)
		defer cleanup()

		if err := doc.Remove(name); err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}
		if err := doc.SaveFile(path); err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + name + " removed"
		return nil
	},
}
