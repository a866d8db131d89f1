package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Baileywight/Consolidator/internal/config"
)

const localConfigurationContent = `output: sources.txt
recursive: true
exclude:
  - build
  - dist
tokens:
  enabled: true
  model: gpt-4o-mini
`

// TestLoadApplicationConfigurationReadsLocalFile verifies decoding of a local config file.
func TestLoadApplicationConfigurationReadsLocalFile(testingHandle *testing.T) {
	testingHandle.Setenv("HOME", testingHandle.TempDir())
	workingDirectory := testingHandle.TempDir()
	configurationPath := filepath.Join(workingDirectory, "custom.yaml")
	if writeError := os.WriteFile(configurationPath, []byte(localConfigurationContent), 0o644); writeError != nil {
		testingHandle.Fatalf("writing configuration: %v", writeError)
	}

	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: configurationPath,
	})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration error: %v", loadError)
	}

	if loaded.Output != "sources.txt" {
		testingHandle.Fatalf("unexpected output name: %s", loaded.Output)
	}
	if loaded.Recursive == nil || !*loaded.Recursive {
		testingHandle.Fatalf("recursive must decode to true")
	}
	if loaded.Tree != nil {
		testingHandle.Fatalf("tree must stay unset when absent from the file")
	}
	if len(loaded.Exclude) != 2 || loaded.Exclude[0] != "build" || loaded.Exclude[1] != "dist" {
		testingHandle.Fatalf("unexpected exclusions: %v", loaded.Exclude)
	}
	if loaded.Tokens.Enabled == nil || !*loaded.Tokens.Enabled || loaded.Tokens.Model != "gpt-4o-mini" {
		testingHandle.Fatalf("unexpected token configuration: %+v", loaded.Tokens)
	}
}

// TestLoadApplicationConfigurationMissingFile verifies that an absent local
// file yields an empty configuration rather than an error.
func TestLoadApplicationConfigurationMissingFile(testingHandle *testing.T) {
	testingHandle.Setenv("HOME", testingHandle.TempDir())
	workingDirectory := testingHandle.TempDir()

	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
	})
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration error: %v", loadError)
	}
	if loaded.Output != "" || loaded.Recursive != nil || len(loaded.Exclude) != 0 {
		testingHandle.Fatalf("expected empty configuration, got %+v", loaded)
	}
}

// TestMergeOverlaysOnlySetFields verifies the pointer-field merge semantics.
func TestMergeOverlaysOnlySetFields(testingHandle *testing.T) {
	baseRecursive := true
	baseCopy := true
	base := config.ApplicationConfiguration{
		Output:    "base.txt",
		Recursive: &baseRecursive,
		Exclude:   []string{"vendor"},
		Tokens:    config.TokenConfiguration{Model: "gpt-4o"},
		Copy:      &baseCopy,
	}
	overrideTree := true
	override := config.ApplicationConfiguration{
		Tree:    &overrideTree,
		Exclude: []string{"build"},
		Tokens:  config.TokenConfiguration{Model: "gpt-4o-mini"},
	}

	merged := base.Merge(override)

	if merged.Output != "base.txt" {
		testingHandle.Fatalf("unset override must keep base output, got %s", merged.Output)
	}
	if merged.Recursive == nil || !*merged.Recursive {
		testingHandle.Fatalf("unset override must keep base recursive")
	}
	if merged.Tree == nil || !*merged.Tree {
		testingHandle.Fatalf("set override must win for tree")
	}
	if len(merged.Exclude) != 1 || merged.Exclude[0] != "build" {
		testingHandle.Fatalf("override exclusions must replace base: %v", merged.Exclude)
	}
	if merged.Tokens.Model != "gpt-4o-mini" {
		testingHandle.Fatalf("override token model must win, got %s", merged.Tokens.Model)
	}
	if merged.Copy == nil || !*merged.Copy {
		testingHandle.Fatalf("unset override must keep base copy")
	}
}
