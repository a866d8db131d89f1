package utils_test

import (
	"path/filepath"
	"testing"

	"github.com/Baileywight/Consolidator/internal/utils"
)

// TestIsBinary verifies text and binary content classification.
func TestIsBinary(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{name: "empty", data: nil, expected: false},
		{name: "plain_text", data: []byte("hello world\n"), expected: false},
		{name: "utf8_multibyte", data: []byte("héllo wörld"), expected: false},
		{name: "invalid_utf8", data: []byte{0xff, 0xfe, 0x41}, expected: true},
		{name: "embedded_nul", data: []byte("abc\x00def"), expected: true},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			if utils.IsBinary(testCase.data) != testCase.expected {
				subTest.Fatalf("IsBinary(%q) != %v", testCase.data, testCase.expected)
			}
		})
	}
}

// TestIsPathWithinRoot verifies containment checks on cleaned absolute paths.
func TestIsPathWithinRoot(testingHandle *testing.T) {
	rootPath := filepath.Join(string(filepath.Separator), "home", "user", "project")
	testCases := []struct {
		name      string
		candidate string
		expected  bool
	}{
		{name: "root_itself", candidate: rootPath, expected: true},
		{name: "direct_child", candidate: filepath.Join(rootPath, "sub"), expected: true},
		{name: "nested_descendant", candidate: filepath.Join(rootPath, "a", "b"), expected: true},
		{name: "sibling", candidate: filepath.Join(string(filepath.Separator), "home", "user", "other"), expected: false},
		{name: "prefix_but_not_descendant", candidate: rootPath + "x", expected: false},
		{name: "parent", candidate: filepath.Dir(rootPath), expected: false},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			if utils.IsPathWithinRoot(testCase.candidate, rootPath) != testCase.expected {
				subTest.Fatalf("IsPathWithinRoot(%s, %s) != %v", testCase.candidate, rootPath, testCase.expected)
			}
		})
	}
}

// TestNormalizeAbsolutePath verifies relative and absolute resolution.
func TestNormalizeAbsolutePath(testingHandle *testing.T) {
	baseDirectory := testingHandle.TempDir()

	relativeResolved, relativeError := utils.NormalizeAbsolutePath("sub/../sub", baseDirectory)
	if relativeError != nil {
		testingHandle.Fatalf("NormalizeAbsolutePath relative: %v", relativeError)
	}
	if relativeResolved != filepath.Join(baseDirectory, "sub") {
		testingHandle.Fatalf("unexpected relative resolution: %s", relativeResolved)
	}

	absoluteInput := filepath.Join(baseDirectory, "nested", "..", "dir")
	absoluteResolved, absoluteError := utils.NormalizeAbsolutePath(absoluteInput, baseDirectory)
	if absoluteError != nil {
		testingHandle.Fatalf("NormalizeAbsolutePath absolute: %v", absoluteError)
	}
	if absoluteResolved != filepath.Join(baseDirectory, "dir") {
		testingHandle.Fatalf("unexpected absolute resolution: %s", absoluteResolved)
	}
}

// TestIsHiddenName verifies the dot-prefix check.
func TestIsHiddenName(testingHandle *testing.T) {
	if !utils.IsHiddenName(".git") || !utils.IsHiddenName(".env") {
		testingHandle.Fatalf("dot-prefixed names must be hidden")
	}
	if utils.IsHiddenName("main.go") || utils.IsHiddenName("dir.with.dots") {
		testingHandle.Fatalf("non-dot-prefixed names must not be hidden")
	}
}

// TestFormatFileSize verifies human-readable size rendering.
func TestFormatFileSize(testingHandle *testing.T) {
	testCases := []struct {
		bytes    int64
		expected string
	}{
		{bytes: 0, expected: "0b"},
		{bytes: 512, expected: "512b"},
		{bytes: 2048, expected: "2kb"},
		{bytes: 1536, expected: "1.5kb"},
		{bytes: 10 * 1024 * 1024, expected: "10mb"},
	}
	for _, testCase := range testCases {
		if formatted := utils.FormatFileSize(testCase.bytes); formatted != testCase.expected {
			testingHandle.Fatalf("FormatFileSize(%d) = %s, want %s", testCase.bytes, formatted, testCase.expected)
		}
	}
}
