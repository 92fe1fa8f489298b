// Package branches lists, switches, creates, and deletes local branches for gitutils.
//
// It offers CommandBuilder for the br Cobra command and Service for running the
// underlying git branch and checkout invocations against a discovered repository.
package branches
