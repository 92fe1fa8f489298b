// Package ui renders human-facing console output: command lifecycle messages, boxed child
// process output, highlighted lists and yes/no confirmations.
package ui
