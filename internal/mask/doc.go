// Package mask prevents secret values from leaking into subprocess output.
//
// It rewrites a child process's stdout and stderr as they arrive, replacing
// every occurrence of a known secret with a placeholder. The unmasked stream
// is never persisted or logged, and bytes withheld across chunk boundaries
// for a potential match are only released once the match is ruled out.
package mask
