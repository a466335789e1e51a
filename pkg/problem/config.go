package problem

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML-encoded Instance from path and validates it.
func LoadConfig(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problem: failed to read config %s: %w", path, err)
	}

	var inst Instance
	if err := yaml.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("problem: failed to parse config %s: %w", path, err)
	}

	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("problem: invalid config %s: %w", path, err)
	}

	return &inst, nil
}

// SaveConfig writes inst as YAML to path.
func SaveConfig(inst *Instance, path string) error {
	data, err := yaml.Marshal(inst)
	if err != nil {
		return fmt.Errorf("problem: failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("problem: failed to write config %s: %w", path, err)
	}
	return nil
}
