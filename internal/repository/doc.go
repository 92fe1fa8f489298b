// Package repository locates the git repository enclosing a working directory, reads its
// configuration and HEAD, and runs git subcommands pinned to the repository root.
package repository
