package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "revisit.dev/pkg/revisit/internal/model"
)

// runFileName is the file a finished run log is written to inside the
// reports directory.
const runFileName = "run.yaml"

// Store persists finished run logs as YAML so downstream tooling can
// consume them.
type Store interface {
	SaveRunLog(dir m.Path, log m.RunLog) error
	LoadRunLog(dir m.Path) (m.RunLog, error)
}

type yamlStore struct{}

// NewStore constructs the YAML-backed report store.
func NewStore() Store {
	return &yamlStore{}
}

// SaveRunLog writes the run log to <dir>/run.yaml, creating dir if needed.
func (s *yamlStore) SaveRunLog(dir m.Path, log m.RunLog) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	data, err := yaml.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}

	path := filepath.Join(string(dir), runFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}

	return nil
}

// LoadRunLog reads a previously saved run log back.
func (s *yamlStore) LoadRunLog(dir m.Path) (m.RunLog, error) {
	path := filepath.Join(string(dir), runFileName)

	data, err := os.ReadFile(path) // #nosec G304 - path is the tool's own reports dir
	if err != nil {
		return m.RunLog{}, fmt.Errorf("read run log: %w", err)
	}

	var log m.RunLog
	if err := yaml.Unmarshal(data, &log); err != nil {
		return m.RunLog{}, fmt.Errorf("decode run log: %w", err)
	}

	return log, nil
}
