package consolidate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Baileywight/Consolidator/internal/types"
	"github.com/Baileywight/Consolidator/internal/utils"
)

const (
	// fileHeaderFormat frames each concatenated file with its display path.
	fileHeaderFormat = "======= %s =======\n"
	// fileBlockSuffix terminates each file block.
	fileBlockSuffix = "\n\n"

	treeSeparatorWidth = 50
	treeSeparatorGlyph = "="

	errorCreateOutputFormat = "creating output file %s: %w"
	errorCloseOutputFormat  = "closing output file %s: %w"
	errorWriteOutputFormat  = "writing output file %s: %w"
	errorListRootFormat     = "listing root directory %s: %w"
	errorWalkRootFormat     = "walking root directory %s: %w"
)

// Consolidate writes a single text file at <rootPath>/<output file> containing
// an optional tree block followed by the contents of every eligible file, each
// preceded by a path header. Per-file failures are recorded in the result and
// do not abort the run; only failures to create, write, or close the output
// file itself are returned as errors. Each call is independent and
// synchronous; concurrent file-system modification is an accepted race.
func Consolidate(rootPath string, options types.Options) (types.Result, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return types.Result{}, fmt.Errorf("getting absolute path for %s: %w", rootPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	outputFileName := options.OutputFileName
	if outputFileName == "" {
		outputFileName = types.DefaultOutputFileName
	}

	outputPath := filepath.Join(cleanedRootPath, outputFileName)
	result := types.Result{OutputPath: outputPath}

	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return result, fmt.Errorf(errorCreateOutputFormat, outputPath, createError)
	}

	writeError := writeConsolidation(outputFile, cleanedRootPath, outputFileName, options, &result)
	closeError := outputFile.Close()
	if writeError != nil {
		return result, writeError
	}
	if closeError != nil {
		return result, fmt.Errorf(errorCloseOutputFormat, outputPath, closeError)
	}
	return result, nil
}

// writeConsolidation renders the optional tree block and the per-file blocks.
func writeConsolidation(outputFile *os.File, rootPath string, outputFileName string, options types.Options, result *types.Result) error {
	if options.IncludeTree {
		renderedTree := RenderTree(rootPath, outputFileName, options.ExcludedFolders)
		treeBlock := renderedTree + "\n\n" + strings.Repeat(treeSeparatorGlyph, treeSeparatorWidth) + "\n\n"
		if _, treeWriteError := outputFile.WriteString(treeBlock); treeWriteError != nil {
			return fmt.Errorf(errorWriteOutputFormat, result.OutputPath, treeWriteError)
		}
	}

	if options.IncludeSubdirectories {
		return appendWalkedFiles(outputFile, rootPath, outputFileName, options.ExcludedFolders, result)
	}
	return appendRootFiles(outputFile, rootPath, outputFileName, result)
}

// appendWalkedFiles concatenates every eligible file under rootPath, pruning
// excluded and dot-prefixed directories before descending. Headers use the
// path relative to rootPath.
func appendWalkedFiles(outputFile *os.File, rootPath string, outputFileName string, excludedFolders map[string]struct{}, result *types.Result) error {
	walkError := filepath.WalkDir(rootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		relativePath := utils.RelativePathOrSelf(walkedPath, rootPath)
		if accessError != nil {
			result.Skipped = append(result.Skipped, types.SkippedFile{
				Path:   relativePath,
				Reason: types.SkipReasonReadError,
				Detail: accessError.Error(),
			})
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.IsDir() {
			if _, isExcluded := excludedFolders[filepath.Clean(walkedPath)]; isExcluded {
				return filepath.SkipDir
			}
			// The root itself is never subject to the dot-entry rule.
			if relativePath != "." && utils.IsHiddenName(directoryEntry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if directoryEntry.Name() == outputFileName || utils.IsHiddenName(directoryEntry.Name()) {
			return nil
		}
		return appendFileBlock(outputFile, walkedPath, relativePath, result)
	})
	if walkError != nil {
		var fatalWrite *outputWriteError
		if errors.As(walkError, &fatalWrite) {
			return fatalWrite.wrapped
		}
		return fmt.Errorf(errorWalkRootFormat, rootPath, walkError)
	}
	return nil
}

// appendRootFiles concatenates files directly inside rootPath without
// recursion. Headers use the bare file name.
func appendRootFiles(outputFile *os.File, rootPath string, outputFileName string, result *types.Result) error {
	directoryEntries, readDirectoryError := os.ReadDir(rootPath)
	if readDirectoryError != nil {
		return fmt.Errorf(errorListRootFormat, rootPath, readDirectoryError)
	}

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if directoryEntry.IsDir() || entryName == outputFileName || utils.IsHiddenName(entryName) {
			continue
		}
		entryPath := filepath.Join(rootPath, entryName)
		if blockError := appendFileBlock(outputFile, entryPath, entryName, result); blockError != nil {
			var fatalWrite *outputWriteError
			if errors.As(blockError, &fatalWrite) {
				return fatalWrite.wrapped
			}
			return blockError
		}
	}
	return nil
}

// appendFileBlock reads one source file and writes its header and content.
// Read failures and binary content are recorded as skips; a failure to write
// the output file is fatal and reported as an outputWriteError.
func appendFileBlock(outputFile *os.File, filePath string, displayPath string, result *types.Result) error {
	fileBytes, fileReadError := os.ReadFile(filePath)
	if fileReadError != nil {
		result.Skipped = append(result.Skipped, types.SkippedFile{
			Path:   displayPath,
			Reason: types.SkipReasonReadError,
			Detail: fileReadError.Error(),
		})
		return nil
	}
	if utils.IsBinary(fileBytes) {
		result.Skipped = append(result.Skipped, types.SkippedFile{
			Path:   displayPath,
			Reason: types.SkipReasonBinary,
		})
		return nil
	}

	fileBlock := fmt.Sprintf(fileHeaderFormat, displayPath) + string(fileBytes) + fileBlockSuffix
	if _, blockWriteError := outputFile.WriteString(fileBlock); blockWriteError != nil {
		return &outputWriteError{wrapped: fmt.Errorf(errorWriteOutputFormat, result.OutputPath, blockWriteError)}
	}
	result.FilesProcessed++
	return nil
}

// outputWriteError marks a fatal output-file write failure so it can cross
// the WalkDir boundary without being mistaken for a per-entry error.
type outputWriteError struct {
	wrapped error
}

func (writeError *outputWriteError) Error() string {
	return writeError.wrapped.Error()
}
