package social

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// LoadSeed returns the built-in dataset the graph starts from.
func LoadSeed() (Snapshot, error) {
	return ParseSnapshotYAML(seedYAML)
}

// ParseSnapshotYAML decodes a snapshot written in YAML.
func ParseSnapshotYAML(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return s, nil
}
