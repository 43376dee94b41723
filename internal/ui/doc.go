// Package ui provides semantic text formatting for CLI output, degrading
// gracefully when color is unavailable or disabled.
package ui
