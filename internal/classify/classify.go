// Package classify decides which repository files are sources and tests, and
// counts the test-marker lines inside test files.
package classify

import (
	"fmt"
	"regexp"
)

// Config is the raw per-repository classification configuration.
// A nil pattern list means the rule is unset.
type Config struct {
	SourceFiles         []string
	ExcludedSourceFiles []string
	TestFiles           []string
	TestLineRegex       string
}

// Classifier holds the compiled matchers of a Config.
type Classifier struct {
	source   *regexp.Regexp
	excluded *regexp.Regexp
	test     *regexp.Regexp
	marker   *regexp.Regexp
}

// New compiles cfg into a Classifier.
func New(cfg Config) (*Classifier, error) {
	c := &Classifier{}
	var err error
	if c.source, err = compileGlobs(cfg.SourceFiles); err != nil {
		return nil, fmt.Errorf("sourceFiles: %w", err)
	}
	if c.excluded, err = compileGlobs(cfg.ExcludedSourceFiles); err != nil {
		return nil, fmt.Errorf("excludedSourceFiles: %w", err)
	}
	if c.test, err = compileGlobs(cfg.TestFiles); err != nil {
		return nil, fmt.Errorf("testFiles: %w", err)
	}
	if cfg.TestLineRegex != "" {
		if c.marker, err = regexp.Compile(cfg.TestLineRegex); err != nil {
			return nil, fmt.Errorf("testLineRegex: %w", err)
		}
	}
	return c, nil
}

// Default returns a classifier that treats every path as a source and none as a test.
func Default() *Classifier {
	return &Classifier{}
}

// IsSourceFile reports whether path counts towards line statistics.
func (c *Classifier) IsSourceFile(path string) bool {
	included := c.source == nil || c.source.MatchString(path)
	excluded := c.excluded != nil && c.excluded.MatchString(path)
	return included && !excluded
}

// IsTestFile reports whether path is a source file that also holds tests.
func (c *Classifier) IsTestFile(path string) bool {
	return c.IsSourceFile(path) && c.test != nil && c.test.MatchString(path)
}

// CountTestLines returns how many of lines contain the test marker.
// It is zero for non-test files and when no marker is configured.
func (c *Classifier) CountTestLines(path string, lines []string) int {
	if c.marker == nil || !c.IsTestFile(path) {
		return 0
	}
	n := 0
	for _, line := range lines {
		if c.marker.MatchString(line) {
			n++
		}
	}
	return n
}

// TestLines returns the lines that contain the test marker.
func (c *Classifier) TestLines(path string, lines []string) []string {
	if c.marker == nil || !c.IsTestFile(path) {
		return nil
	}
	var out []string
	for _, line := range lines {
		if c.marker.MatchString(line) {
			out = append(out, line)
		}
	}
	return out
}
