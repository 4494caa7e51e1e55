package refs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// snapshotFile is the on-disk shape of a refs file:
//
//	refs:
//	  refs/heads/main: 0b8a32c...
//	  refs/heads/feature: 91ee4fa...
type snapshotFile struct {
	Refs map[string]string `yaml:"refs"`
}

// LoadSnapshotFile reads a name -> revision mapping from a YAML refs
// file. Used by the CLI and tests in place of a live fetch.
func LoadSnapshotFile(path string) (Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read refs file: %w", err)
	}

	var file snapshotFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse refs file %s: %w", path, err)
	}

	snap := make(Snapshot, len(file.Refs))
	for name, hash := range file.Refs {
		if hash == "" {
			return nil, fmt.Errorf("refs file %s: ref %q has no revision", path, name)
		}
		snap[name] = New(name, hash)
	}
	return snap, nil
}
