// Package utils contains general helper functions used across the consolidator.
package utils

import (
	"path/filepath"
	"strings"
)

const (
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".consolidator.yaml"
	// GlobalConfigDirectoryName is the directory under the home directory holding global configuration.
	GlobalConfigDirectoryName = ".consolidator"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	// HiddenEntryPrefix marks directory entries excluded from every pass.
	HiddenEntryPrefix = "."

	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal execution errors.
	ApplicationExecutionFailedMessage = "application execution failed"
)

// NormalizeAbsolutePath resolves pathValue to a cleaned absolute path.
// A relative pathValue is resolved against baseDirectory.
func NormalizeAbsolutePath(pathValue string, baseDirectory string) (string, error) {
	if filepath.IsAbs(pathValue) {
		return filepath.Clean(pathValue), nil
	}
	joinedPath := filepath.Join(baseDirectory, pathValue)
	absolutePath, absoluteError := filepath.Abs(joinedPath)
	if absoluteError != nil {
		return "", absoluteError
	}
	return filepath.Clean(absolutePath), nil
}

// IsPathWithinRoot reports whether candidatePath is rootPath or a descendant of it.
// Both paths must already be cleaned absolute paths.
func IsPathWithinRoot(candidatePath string, rootPath string) bool {
	if candidatePath == rootPath {
		return true
	}
	rootWithSeparator := rootPath
	if !strings.HasSuffix(rootWithSeparator, string(filepath.Separator)) {
		rootWithSeparator += string(filepath.Separator)
	}
	return strings.HasPrefix(candidatePath, rootWithSeparator)
}

// IsHiddenName reports whether entryName is a dot-prefixed file or directory name.
func IsHiddenName(entryName string) bool {
	return strings.HasPrefix(entryName, HiddenEntryPrefix)
}

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relativeError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativeError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}
