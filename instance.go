package depotassign

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadInstance reads an instance JSON file.
func LoadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var inst Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &inst, nil
}

// SaveInstance writes the instance, usually with its solution filled
// in, back to disk.
func SaveInstance(path string, inst *Instance) error {
	data, err := json.MarshalIndent(inst, "", "\t")
	if err != nil {
		return err
	}
	data = []byte(SanitizeJsonArrayLineBreaks(string(data)))
	return os.WriteFile(path, data, 0644)
}
