package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Baileywight/Consolidator/internal/config"
	"github.com/Baileywight/Consolidator/internal/utils"
)

// TestInitializeConfigurationWritesLocalFile verifies default file creation.
func TestInitializeConfigurationWritesLocalFile(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()

	destinationPath, initializeError := config.InitializeConfiguration(config.InitOptions{
		Target:           config.InitTargetLocal,
		WorkingDirectory: workingDirectory,
	})
	if initializeError != nil {
		testingHandle.Fatalf("InitializeConfiguration error: %v", initializeError)
	}
	if destinationPath != filepath.Join(workingDirectory, utils.ConfigFileName) {
		testingHandle.Fatalf("unexpected destination %s", destinationPath)
	}

	writtenBytes, readError := os.ReadFile(destinationPath)
	if readError != nil {
		testingHandle.Fatalf("reading configuration: %v", readError)
	}
	if !strings.Contains(string(writtenBytes), "output: consolidated_code.txt") {
		testingHandle.Fatalf("default template missing output entry:\n%s", writtenBytes)
	}
}

// TestInitializeConfigurationRefusesOverwrite verifies the force flag requirement.
func TestInitializeConfigurationRefusesOverwrite(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()
	options := config.InitOptions{
		Target:           config.InitTargetLocal,
		WorkingDirectory: workingDirectory,
	}

	if _, firstError := config.InitializeConfiguration(options); firstError != nil {
		testingHandle.Fatalf("first initialization failed: %v", firstError)
	}
	if _, secondError := config.InitializeConfiguration(options); secondError == nil {
		testingHandle.Fatalf("expected error without force when the file exists")
	}

	options.Force = true
	if _, forcedError := config.InitializeConfiguration(options); forcedError != nil {
		testingHandle.Fatalf("forced initialization failed: %v", forcedError)
	}
}
