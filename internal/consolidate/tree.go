// Package consolidate implements directory tree rendering and file consolidation.
package consolidate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Baileywight/Consolidator/internal/utils"
)

const (
	// TreeHeader is the first line of every rendered tree.
	TreeHeader = "Directory Structure:"

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
)

// RenderTree produces a textual diagram of the directory structure under rootPath.
// The entry named outputFileName, dot-prefixed entries, and directories whose
// normalized absolute path appears in excludedFolders are omitted. A listing
// failure silently prunes the affected branch. The function has no side
// effects; the result reflects the file-system snapshot at call time.
func RenderTree(rootPath string, outputFileName string, excludedFolders map[string]struct{}) string {
	treeLines := []string{TreeHeader}
	treeLines = append(treeLines, renderTreeLines(filepath.Clean(rootPath), "", outputFileName, excludedFolders)...)
	return strings.Join(treeLines, "\n")
}

// renderTreeLines returns the rendered lines for one directory and its descendants.
func renderTreeLines(directoryPath string, linePrefix string, outputFileName string, excludedFolders map[string]struct{}) []string {
	if _, isExcluded := excludedFolders[directoryPath]; isExcluded {
		return nil
	}

	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil
	}

	var visibleEntries []os.DirEntry
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if entryName == outputFileName || utils.IsHiddenName(entryName) {
			continue
		}
		if directoryEntry.IsDir() {
			entryPath := filepath.Join(directoryPath, entryName)
			if _, isExcluded := excludedFolders[entryPath]; isExcluded {
				continue
			}
		}
		visibleEntries = append(visibleEntries, directoryEntry)
	}

	var renderedLines []string
	for entryIndex, directoryEntry := range visibleEntries {
		connector := treeBranchConnector
		childPrefix := linePrefix + treeBranchPadding
		if entryIndex == len(visibleEntries)-1 {
			connector = treeLastConnector
			childPrefix = linePrefix + treeLastPadding
		}

		renderedLines = append(renderedLines, linePrefix+connector+directoryEntry.Name())

		if directoryEntry.IsDir() {
			entryPath := filepath.Join(directoryPath, directoryEntry.Name())
			renderedLines = append(renderedLines, renderTreeLines(entryPath, childPrefix, outputFileName, excludedFolders)...)
		}
	}
	return renderedLines
}
