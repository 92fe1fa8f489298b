// Package syncplan synchronizes the local branch with one remote and optionally
// publishes it to another.
//
// ParseArguments validates the "from <remote[:branch]> [to <remote>]" grammar,
// BuildPlan turns a request into an ordered list of git steps, and Service
// prints the plan, asks for confirmation, and streams each step inside a framed
// output block. CommandBuilder exposes the workflow as the sync Cobra command.
package syncplan
