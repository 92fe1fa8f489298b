package utils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts user home shortcuts and environment references into concrete paths.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	environmentLookup     func(string) string
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookups.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom home directory provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider, environmentLookup: os.Getenv}
}

// Expand resolves a leading ~ to the home directory and substitutes $VARIABLE references.
// Paths that cannot be expanded are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || len(candidatePath) == 0 {
		return candidatePath
	}

	expandedPath := os.Expand(candidatePath, expander.environmentLookup)
	if !strings.HasPrefix(expandedPath, tildeSymbolConstant) {
		return expandedPath
	}

	resolvedHomeDirectory := expander.resolveHomeDirectory()
	if len(resolvedHomeDirectory) == 0 {
		return expandedPath
	}

	if expandedPath == tildeSymbolConstant {
		return resolvedHomeDirectory
	}

	tildeWithSeparator := tildeSymbolConstant + string(os.PathSeparator)
	for _, prefix := range []string{tildeForwardSlashPrefixConstant, tildeWithSeparator} {
		if relativePath, hasPrefix := strings.CutPrefix(expandedPath, prefix); hasPrefix {
			return filepath.Join(resolvedHomeDirectory, relativePath)
		}
	}

	return expandedPath
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}
