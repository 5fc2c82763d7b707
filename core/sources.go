package core

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/huangsam/hammer/internal/classify"
	"github.com/huangsam/hammer/internal/contract"
	"github.com/huangsam/hammer/schema"
	"github.com/src-d/enry/v2"
)

// ListSources returns the source files at HEAD of the repository as classified
// by the configuration at configPath. An empty configPath means the default
// configuration file inside the repository. Test files carry their marker lines.
func ListSources(ctx context.Context, git contract.GitClient, repoPath, configPath string) ([]schema.SourceFile, error) {
	if configPath == "" {
		configPath = filepath.Join(repoPath, schema.DefaultConfigFileName)
	}
	classifier, err := classify.Load(configPath)
	if err != nil {
		return nil, err
	}
	commits, err := git.ListCommits(ctx, repoPath)
	if err != nil || len(commits) == 0 {
		return nil, err
	}
	entries, err := git.ListTree(ctx, repoPath, "HEAD")
	if err != nil {
		return nil, err
	}

	var out []schema.SourceFile
	for _, entry := range entries {
		if !classifier.IsSourceFile(entry.Path) {
			continue
		}
		file := schema.SourceFile{
			Path:     entry.Path,
			Test:     classifier.IsTestFile(entry.Path),
			Language: enry.GetLanguage(filepath.Base(entry.Path), nil),
		}
		if file.Test {
			content, err := git.ReadBlob(ctx, repoPath, entry.BlobID)
			if err != nil {
				return nil, err
			}
			for _, line := range classifier.TestLines(entry.Path, splitLines(content)) {
				file.TestLines = append(file.TestLines, strings.TrimRight(line, " \t\r\n"))
			}
		}
		out = append(out, file)
	}
	return out, nil
}
