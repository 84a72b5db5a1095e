// Package proc starts external programs for the shell and reclaims the ones
// left running in the background.
//
// Nothing in this package knows about the shell's history or dispatch state;
// the Reaper only ever sees process IDs.
package proc
