package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	m "github.com/natepiano/brp-mutate/internal/model"
)

const (
	snapshotFile = "registry.json"
	pathsSubdir  = "paths"
	storePerm    = 0o755
	filePerm     = 0o600
)

// SnapshotStore persists registry snapshots and computed path analyses
// under a reports directory, for offline analysis and the view command.
type SnapshotStore interface {
	SaveSnapshot(dir m.Path, snapshot *m.Snapshot) error
	LoadSnapshot(dir m.Path) (*m.Snapshot, error)
	SaveAnalysis(dir m.Path, root m.TypeName, paths map[string]m.PathEntry) error
	LoadAnalyses(dir m.Path) (map[m.TypeName]map[string]m.PathEntry, error)
}

type snapshotStore struct{}

// NewSnapshotStore constructs the filesystem-backed store.
func NewSnapshotStore() SnapshotStore {
	return &snapshotStore{}
}

func (s *snapshotStore) SaveSnapshot(dir m.Path, snapshot *m.Snapshot) error {
	if err := os.MkdirAll(string(dir), storePerm); err != nil {
		return fmt.Errorf("failed to create reports dir: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	target := filepath.Join(string(dir), snapshotFile)
	if err := os.WriteFile(target, data, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	return nil
}

func (s *snapshotStore) LoadSnapshot(dir m.Path) (*m.Snapshot, error) {
	target := filepath.Join(string(dir), snapshotFile)

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target, err)
	}

	var snapshot m.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", target, err)
	}

	return &snapshot, nil
}

// analysisFile is the on-disk unit for one analyzed root type.
type analysisFile struct {
	Root  m.TypeName             `json:"root"`
	Paths map[string]m.PathEntry `json:"paths"`
}

func (s *snapshotStore) SaveAnalysis(dir m.Path, root m.TypeName, paths map[string]m.PathEntry) error {
	target := filepath.Join(string(dir), pathsSubdir)
	if err := os.MkdirAll(target, storePerm); err != nil {
		return fmt.Errorf("failed to create paths dir: %w", err)
	}

	data, err := json.MarshalIndent(analysisFile{Root: root, Paths: paths}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analysis for %s: %w", root, err)
	}

	file := filepath.Join(target, sanitizeTypeName(root)+".json")
	if err := os.WriteFile(file, data, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}

	return nil
}

func (s *snapshotStore) LoadAnalyses(dir m.Path) (map[m.TypeName]map[string]m.PathEntry, error) {
	target := filepath.Join(string(dir), pathsSubdir)

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target, err)
	}

	analyses := make(map[m.TypeName]map[string]m.PathEntry)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(target, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		var file analysisFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", entry.Name(), err)
		}

		analyses[file.Root] = file.Paths
	}

	return analyses, nil
}

// sanitizeTypeName turns a fully-qualified type name into a safe file
// name.
func sanitizeTypeName(t m.TypeName) string {
	replacer := strings.NewReplacer(
		"::", ".",
		"<", "(",
		">", ")",
		" ", "",
		"/", "_",
	)

	return replacer.Replace(string(t))
}
