// Package configcmd provides read-only inspection commands for the enclosing repository's
// .git/config and HEAD files.
package configcmd
