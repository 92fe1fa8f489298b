// Package proxy exposes thin gitutils subcommands that hand their arguments to the matching git
// command with the terminal attached.
package proxy
