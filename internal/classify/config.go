package classify

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/hammer/schema"
	"github.com/spf13/viper"
)

// Keys of the classification document.
const (
	keySourceFiles         = "sourceFiles"
	keyExcludedSourceFiles = "excludedSourceFiles"
	keyTestFiles           = "testFiles"
	keyTestLineRegex       = "testLineRegex"
)

// Load reads the classification file at path and compiles it.
// An empty path or a missing file yields the default classifier.
func Load(path string) (*Classifier, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// ReadConfig reads the classification file at path without compiling it.
func ReadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	} else if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml", ".json":
	default:
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading classification config %s: %w", path, err)
	}

	var cfg Config
	var err error
	if cfg.SourceFiles, err = patternList(v, keySourceFiles); err != nil {
		return Config{}, err
	}
	if cfg.ExcludedSourceFiles, err = patternList(v, keyExcludedSourceFiles); err != nil {
		return Config{}, err
	}
	if cfg.TestFiles, err = patternList(v, keyTestFiles); err != nil {
		return Config{}, err
	}
	if v.IsSet(keyTestLineRegex) {
		s, ok := v.Get(keyTestLineRegex).(string)
		if !ok {
			return Config{}, fmt.Errorf("%s must be a string", keyTestLineRegex)
		}
		cfg.TestLineRegex = s
	}
	return cfg, nil
}

// patternList accepts a single glob or a list of globs under key.
func patternList(v *viper.Viper, key string) ([]string, error) {
	if !v.IsSet(key) {
		return nil, nil
	}
	switch raw := v.Get(key).(type) {
	case string:
		return []string{raw}, nil
	case []string:
		return raw, nil
	case []any:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: %w: %v", key, schema.ErrMalformedPattern, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: %w: %v", key, schema.ErrMalformedPattern, raw)
	}
}
