// Package utils provides filesystem and IO helpers: locating the secrets
// document in ancestor directories, atomic file replacement, and piped
// stdin reading.
package utils
