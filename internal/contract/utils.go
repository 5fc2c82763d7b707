package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Verdict label constants.
const (
	PassValue = "OK"   // Pass value
	FailValue = "FAIL" // Fail value
)

// Color variables for console output.
var (
	PassColor    = color.New(color.FgGreen, color.Bold) // PassColor marks a matching comparison.
	FailColor    = color.New(color.FgRed, color.Bold)   // FailColor marks a mismatch.
	HeadingColor = color.New(color.FgCyan, color.Bold)  // HeadingColor is used for table titles.
)

// GetPlainVerdict returns the plain text verdict of a comparison.
func GetPlainVerdict(ok bool) string {
	if ok {
		return PassValue
	}
	return FailValue
}

// GetColorVerdict returns the verdict of a comparison colored for console output.
func GetColorVerdict(ok bool) string {
	if ok {
		return PassColor.Sprint(PassValue)
	}
	return FailColor.Sprint(FailValue)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetDBFilePath returns the path to the default SQLite database file.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".hammer.db"
	}
	return filepath.Join(homeDir, ".hammer.db")
}

// TruncateLabel truncates a label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." suffix and at least one character.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
