package knowledge

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Load reads the knowledge base at path. See LoadWithLogger.
func Load(path string) (*Corpus, error) {
	return LoadWithLogger(path, zap.NewNop())
}

// LoadWithLogger reads and parses the knowledge base at path. When the file
// does not exist the default FAQ content is written there first and then
// read back, so the file on disk and the returned corpus always come from
// the same parse.
func LoadWithLogger(path string, logger *zap.Logger) (*Corpus, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Info("knowledge base not found, creating sample", zap.String("path", path))
		if err := WriteFile(path, DefaultContent); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "read", Err: err}
	}

	res := Parse(string(data))
	for _, s := range res.Skipped {
		logger.Debug("skipped knowledge base block",
			zap.Int("block", s.Block),
			zap.String("reason", s.Reason))
	}
	logger.Info("loaded knowledge base",
		zap.String("path", path),
		zap.Int("records", len(res.Records)),
		zap.Int("skipped", len(res.Skipped)))

	return &Corpus{
		path:    path,
		records: res.Records,
		skipped: res.Skipped,
	}, nil
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &LoadError{Path: path, Op: "mkdir", Err: err}
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &LoadError{Path: path, Op: "write", Err: err}
	}
	return nil
}
