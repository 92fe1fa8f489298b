package repository

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/temirov/gitutils/internal/filesystem"
	"github.com/temirov/gitutils/internal/gitconfig"
	"github.com/temirov/gitutils/internal/shared"
)

const (
	branchReferencePrefixConstant = "ref: refs/heads/"
	headKindBranchLabelConstant   = "branch"
	headKindDetachedLabelConstant = "detached"
	headLabelSeparatorConstant    = " "
)

// HeadKind distinguishes a branch checkout from a detached HEAD.
type HeadKind int

// Supported HEAD kinds.
const (
	HeadKindBranch HeadKind = iota
	HeadKindDetached
)

// String returns the lowercase label of the kind.
func (kind HeadKind) String() string {
	if kind == HeadKindBranch {
		return headKindBranchLabelConstant
	}
	return headKindDetachedLabelConstant
}

// Head is the classified content of .git/HEAD.
type Head struct {
	Kind HeadKind
	Name string
}

// BranchName returns the checked-out branch when HEAD points at one.
func (head Head) BranchName() (string, bool) {
	if head.Kind != HeadKindBranch {
		return "", false
	}
	return head.Name, true
}

// CommitHash returns the commit when HEAD is detached.
func (head Head) CommitHash() (string, bool) {
	if head.Kind != HeadKindDetached {
		return "", false
	}
	return head.Name, true
}

func (head Head) String() string {
	return head.Kind.String() + headLabelSeparatorConstant + head.Name
}

// ClassifyHead interprets raw HEAD content. Any content that is not a branch reference,
// including empty content, is treated as a detached commit.
func ClassifyHead(content string) Head {
	trimmedContent := strings.TrimSpace(content)
	if branchName, isBranch := strings.CutPrefix(trimmedContent, branchReferencePrefixConstant); isBranch {
		return Head{Kind: HeadKindBranch, Name: strings.TrimSpace(branchName)}
	}
	return Head{Kind: HeadKindDetached, Name: trimmedContent}
}

// ResolveHead reads and classifies <root>/.git/HEAD.
func ResolveHead(rootDirectory string) (Head, error) {
	head, _, resolveError := resolveHead(filesystem.OSFileSystem{}, rootDirectory)
	return head, resolveError
}

func resolveHead(fileSystem shared.FileSystem, rootDirectory string) (Head, string, error) {
	headPath := filepath.Join(rootDirectory, gitMetadataDirectoryNameConstant, gitHeadFileNameConstant)
	contentBytes, readError := fileSystem.ReadFile(headPath)
	if readError != nil {
		return Head{}, "", gitconfig.ConfigReadError{Path: headPath, Cause: readError}
	}
	if !utf8.Valid(contentBytes) {
		return Head{}, "", MalformedHeadError{Path: headPath}
	}
	rawContent := strings.TrimSpace(string(contentBytes))
	return ClassifyHead(rawContent), rawContent, nil
}
