// Package gitconfig parses the plain-text .git/config format into ordered sections
// and answers the lookups the rest of gitutils needs (remotes, dotted keys, repository root).
//
// Parsing is lenient: malformed option lines are skipped and only I/O failures surface as errors.
package gitconfig
