// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Baileywight/Consolidator/internal/config"
	"github.com/Baileywight/Consolidator/internal/consolidate"
	"github.com/Baileywight/Consolidator/internal/services/clipboard"
	"github.com/Baileywight/Consolidator/internal/tokenizer"
	"github.com/Baileywight/Consolidator/internal/types"
	"github.com/Baileywight/Consolidator/internal/utils"
)

const (
	outputFlagName    = "output"
	recursiveFlagName = "recursive"
	treeFlagName      = "tree"
	excludeFlagName   = "exclude"
	tokensFlagName    = "tokens"
	modelFlagName     = "model"
	copyFlagName      = "copy"
	configFlagName    = "config"
	versionFlagName   = "version"
	forceFlagName     = "force"
	globalFlagName    = "global"

	versionTemplate      = "consolidator version: %s\n"
	defaultRootArgument  = "."
	rootUse              = "consolidator [root]"
	rootShortDescription = "concatenate the text files under a directory into one output file"
	rootLongDescription  = `consolidator walks a chosen root folder and writes a single text file
containing the contents of every eligible source file, each preceded by a
path header. Use --recursive to include subdirectories, --tree to prefix the
output with a directory structure diagram, and --exclude to omit folders.`
	rootUsageExample = `  # Consolidate the current directory only
  consolidator

  # Recurse into subdirectories and prefix the tree diagram
  consolidator --recursive --tree ./project

  # Exclude build output and write to a custom file
  consolidator -r -e build -e dist -o sources.txt ./project`

	initUse              = "init"
	initShortDescription = "write the default configuration file"
	initLongDescription  = `Write the default configuration file.
Use --global to place it under the home directory instead of the working directory.`

	outputFlagDescription    = "output file name written inside the root folder"
	recursiveFlagDescription = "include files from subdirectories"
	treeFlagDescription      = "prefix the output with a directory structure diagram"
	excludeFlagDescription   = "folder to exclude (absolute or relative to the root, repeatable)"
	tokensFlagDescription    = "report the token count of the consolidated output"
	modelFlagDescription     = "tokenizer model used for token counting"
	copyFlagDescription      = "copy the consolidated output to the system clipboard"
	configFlagDescription    = "path to a configuration file"
	versionFlagDescription   = "display application version"
	forceFlagDescription     = "overwrite an existing configuration file"
	globalFlagDescription    = "write the global configuration file"

	errorRootMissingFormat    = "root folder '%s' does not exist"
	errorRootStatFormat       = "stat failed for root folder '%s': %w"
	errorRootNotDirectory     = "root path '%s' is not a directory"
	errorOutputNameEmpty      = "output file name must not be empty"
	errorOutputNameNested     = "output file name '%s' must not contain a path separator"
	errorAbsolutePathFormat   = "abs failed for '%s': %w"
	initializedConfigFormat   = "Configuration written to %s"
	warningOutsideRootFormat  = "Excluded folder %s is outside the root folder, ignoring"
	warningDuplicateFormat    = "Excluded folder %s is already in the exclusion list"
	warningNormalizeFormat    = "Unable to resolve excluded folder %s: %v"
	warningBinarySkipFormat   = "Skipping file %s: binary content"
	warningReadErrorFormat    = "Error processing file %s: %s"
	warningClipboardFormat    = "Failed to copy output to clipboard: %v"
	warningTokenCountFormat   = "Failed to count tokens for %s: %v"
	warningOutputReadFormat   = "Unable to read consolidated output %s back: %v"
	summaryMessageFormat      = "Consolidated %d files to: %s (%s)"
	excludedSummaryFormat     = " (excluded %d folders)"
	tokenSummaryFormat        = "Token count: %d (%s)"
	clipboardCopiedMessage    = "Consolidated output copied to clipboard"
	errorConsolidationContext = "consolidating %s: %w"
)

// Execute runs the consolidator application using the provided logger for
// progress, warning, and summary messages.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// runOptions stores the flag values collected by the root command.
type runOptions struct {
	outputFileName  string
	recursive       bool
	includeTree     bool
	excludedFolders []string
	tokensEnabled   bool
	tokenModel      string
	copyEnabled     bool
	configFilePath  string
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool
	var options runOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			rootArgument := defaultRootArgument
			if len(arguments) == 1 {
				rootArgument = arguments[0]
			}
			return runConsolidation(command, rootArgument, options, logger)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVarP(&options.outputFileName, outputFlagName, "o", types.DefaultOutputFileName, outputFlagDescription)
	rootCommand.Flags().BoolVarP(&options.recursive, recursiveFlagName, "r", false, recursiveFlagDescription)
	rootCommand.Flags().BoolVarP(&options.includeTree, treeFlagName, "t", false, treeFlagDescription)
	rootCommand.Flags().StringArrayVarP(&options.excludedFolders, excludeFlagName, "e", nil, excludeFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenModel, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	rootCommand.Flags().BoolVar(&options.copyEnabled, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var forceOverwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			destinationPath, initializeError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  forceOverwrite,
			})
			if initializeError != nil {
				return initializeError
			}
			fmt.Printf(initializedConfigFormat+"\n", destinationPath)
			return nil
		},
	}

	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&forceOverwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runConsolidation validates the collected parameters, applies configuration
// defaults, runs the consolidation, and reports the outcome.
func runConsolidation(command *cobra.Command, rootArgument string, options runOptions, logger *zap.Logger) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		return configurationError
	}
	effective := applyConfigurationDefaults(command, options, applicationConfiguration)

	rootPath, rootError := resolveRootPath(rootArgument)
	if rootError != nil {
		return rootError
	}
	if outputNameError := validateOutputFileName(effective.outputFileName); outputNameError != nil {
		return outputNameError
	}

	excludedFolders := resolveExcludedFolders(rootPath, effective.excludedFolders, logger)

	result, consolidationError := consolidate.Consolidate(rootPath, types.Options{
		OutputFileName:        effective.outputFileName,
		IncludeSubdirectories: effective.recursive,
		IncludeTree:           effective.includeTree,
		ExcludedFolders:       excludedFolders,
	})
	if consolidationError != nil {
		return fmt.Errorf(errorConsolidationContext, rootPath, consolidationError)
	}

	for _, skippedFile := range result.Skipped {
		switch skippedFile.Reason {
		case types.SkipReasonBinary:
			logger.Warn(fmt.Sprintf(warningBinarySkipFormat, skippedFile.Path))
		default:
			logger.Warn(fmt.Sprintf(warningReadErrorFormat, skippedFile.Path, skippedFile.Detail))
		}
	}

	logSummary(logger, result, len(excludedFolders))
	reportOutputExtras(logger, result.OutputPath, effective)
	return nil
}

// applyConfigurationDefaults overlays configuration file values beneath
// explicitly set flags.
func applyConfigurationDefaults(command *cobra.Command, options runOptions, configuration config.ApplicationConfiguration) runOptions {
	effective := options
	flagSet := command.Flags()

	if !flagSet.Changed(outputFlagName) && configuration.Output != "" {
		effective.outputFileName = configuration.Output
	}
	if !flagSet.Changed(recursiveFlagName) && configuration.Recursive != nil {
		effective.recursive = *configuration.Recursive
	}
	if !flagSet.Changed(treeFlagName) && configuration.Tree != nil {
		effective.includeTree = *configuration.Tree
	}
	if !flagSet.Changed(excludeFlagName) && len(configuration.Exclude) > 0 {
		effective.excludedFolders = append([]string{}, configuration.Exclude...)
	}
	if !flagSet.Changed(tokensFlagName) && configuration.Tokens.Enabled != nil {
		effective.tokensEnabled = *configuration.Tokens.Enabled
	}
	if !flagSet.Changed(modelFlagName) && configuration.Tokens.Model != "" {
		effective.tokenModel = configuration.Tokens.Model
	}
	if !flagSet.Changed(copyFlagName) && configuration.Copy != nil {
		effective.copyEnabled = *configuration.Copy
	}
	return effective
}

// resolveRootPath converts the root argument into a validated absolute directory path.
func resolveRootPath(rootArgument string) (string, error) {
	absoluteRootPath, absoluteError := filepath.Abs(rootArgument)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootArgument, absoluteError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)
	fileInformation, statError := os.Stat(cleanedRootPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorRootMissingFormat, rootArgument)
		}
		return "", fmt.Errorf(errorRootStatFormat, rootArgument, statError)
	}
	if !fileInformation.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectory, rootArgument)
	}
	return cleanedRootPath, nil
}

// validateOutputFileName rejects empty and nested output file names.
func validateOutputFileName(outputFileName string) error {
	if strings.TrimSpace(outputFileName) == "" {
		return fmt.Errorf(errorOutputNameEmpty)
	}
	if outputFileName != filepath.Base(outputFileName) {
		return fmt.Errorf(errorOutputNameNested, outputFileName)
	}
	return nil
}

// resolveExcludedFolders normalizes the configured exclusions into a set of
// absolute paths. Paths outside the root and duplicates are dropped with a
// warning; the core never re-checks containment.
func resolveExcludedFolders(rootPath string, excludedFolders []string, logger *zap.Logger) map[string]struct{} {
	resolvedFolders := make(map[string]struct{})
	for _, excludedFolder := range excludedFolders {
		trimmedFolder := strings.TrimSpace(excludedFolder)
		if trimmedFolder == "" {
			continue
		}
		normalizedFolder, normalizeError := utils.NormalizeAbsolutePath(trimmedFolder, rootPath)
		if normalizeError != nil {
			logger.Warn(fmt.Sprintf(warningNormalizeFormat, trimmedFolder, normalizeError))
			continue
		}
		if !utils.IsPathWithinRoot(normalizedFolder, rootPath) {
			logger.Warn(fmt.Sprintf(warningOutsideRootFormat, normalizedFolder))
			continue
		}
		if _, alreadyExcluded := resolvedFolders[normalizedFolder]; alreadyExcluded {
			logger.Warn(fmt.Sprintf(warningDuplicateFormat, normalizedFolder))
			continue
		}
		resolvedFolders[normalizedFolder] = struct{}{}
	}
	return resolvedFolders
}

// logSummary reports the consolidation outcome the way the result line of the
// original desktop tool did, with the output size appended.
func logSummary(logger *zap.Logger, result types.Result, excludedCount int) {
	outputSize := "0b"
	if fileInformation, statError := os.Stat(result.OutputPath); statError == nil {
		outputSize = utils.FormatFileSize(fileInformation.Size())
	}
	summaryMessage := fmt.Sprintf(summaryMessageFormat, result.FilesProcessed, result.OutputPath, outputSize)
	if excludedCount > 0 {
		summaryMessage += fmt.Sprintf(excludedSummaryFormat, excludedCount)
	}
	logger.Info(summaryMessage)
}

// reportOutputExtras handles token counting and clipboard copying of the
// consolidated output. Both are best-effort; failures are warnings.
func reportOutputExtras(logger *zap.Logger, outputPath string, options runOptions) {
	if !options.tokensEnabled && !options.copyEnabled {
		return
	}
	outputBytes, readError := os.ReadFile(outputPath)
	if readError != nil {
		logger.Warn(fmt.Sprintf(warningOutputReadFormat, outputPath, readError))
		return
	}
	outputText := string(outputBytes)

	if options.tokensEnabled {
		tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(options.tokenModel)
		if counterError != nil {
			logger.Warn(fmt.Sprintf(warningTokenCountFormat, outputPath, counterError))
		} else {
			tokenCount, countError := tokenCounter.CountString(outputText)
			if countError != nil {
				logger.Warn(fmt.Sprintf(warningTokenCountFormat, outputPath, countError))
			} else {
				logger.Info(fmt.Sprintf(tokenSummaryFormat, tokenCount, resolvedModel))
			}
		}
	}

	if options.copyEnabled {
		copier := clipboard.NewService()
		if copyError := copier.Copy(outputText); copyError != nil {
			logger.Warn(fmt.Sprintf(warningClipboardFormat, copyError))
		} else {
			logger.Info(clipboardCopiedMessage)
		}
	}
}
