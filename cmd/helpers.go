package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/ochre-sh/ochre/internal/secrets"
	"github.com/ochre-sh/ochre/internal/ui"
	"github.com/ochre-sh/ochre/internal/utils"

	"github.com/briandowns/spinner"
)

// DocumentPathEnv is the environment variable selecting an alternate document path.
const DocumentPathEnv = "OCHRE_YAML"

var secretNamePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// validateSecretName enforces the naming rule for secrets: upper case ASCII
// letters, digits, and underscores, so every name is usable as an environment
// variable without quoting.
func validateSecretName(name string) error {
	if name == "" {
		return fmt.Errorf("secret name cannot be empty")
	}
	if !secretNamePattern.MatchString(name) {
		return fmt.Errorf("secret name must contain only upper case ASCII letters, digits, and underscores")
	}
	return nil
}

// resolveDocumentPath determines where the secrets document lives:
// the --ochre-yaml flag, then OCHRE_YAML, then an ancestor-directory search,
// then ./ochre.yaml as a last resort (forInit skips the search so a new
// document is always created where the command runs).
func resolveDocumentPath(forInit bool) (string, error) {
	if documentPath != "" {
		return documentPath, nil
	}
	if fromEnv := os.Getenv(DocumentPathEnv); fromEnv != "" {
		return fromEnv, nil
	}
	if !forInit {
		found, err := utils.FindDocumentPath(secrets.DefaultDocumentName)
		if err != nil {
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}
	return secrets.DefaultDocumentName, nil
}

// loadDocument resolves the document path and parses the document.
func loadDocument() (string, *secrets.Document, error) {
	path, err := resolveDocumentPath(false)
	if err != nil {
		return "", nil, err
	}
	Logger.Debugf("Loading secrets document from %s", path)
	doc, err := secrets.LoadFile(path)
	if err != nil {
		return "", nil, err
	}
	return path, doc, nil
}

// loadSecretKey fetches the secret key for doc from the configured key store,
// the environment by default or AWS Secrets Manager with --key-store aws.
func loadSecretKey(ctx context.Context, doc *secrets.Document) (secrets.SecretKey, error) {
	switch keyStore {
	case "env":
		return secrets.LoadSecretKey(doc.PublicKey)
	case "aws":
		if awsRegion == "" {
			return secrets.SecretKey{}, fmt.Errorf("--key-store aws requires --aws-region")
		}
		Logger.Debugf("Loading secret key from AWS Secrets Manager in %s", awsRegion)
		return secrets.LoadSecretKeyFromAWS(ctx, awsRegion, doc.PublicKey)
	default:
		return secrets.SecretKey{}, fmt.Errorf("unknown key store %q (expected env or aws)", keyStore)
	}
}

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode. Returns the spinner and a function that should be
// deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines; the cleanup function
// calls ui.EnsureNewline before printing.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
