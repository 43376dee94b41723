// Package logger provides leveled, color-prefixed logging for ochre commands.
//
// Info and debug output are gated behind the --verbose and --debug flags;
// warnings and errors always print. Secret values and secret keys must never
// be passed to any of these methods.
package logger
