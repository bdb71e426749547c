package mesh

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// ReadTopologyFile loads a topology from its YAML form and validates it.
func ReadTopologyFile(filename string) (t *Topology, err error) {
	var data []byte
	if data, err = os.ReadFile(filename); err != nil {
		return nil, fmt.Errorf("unable to read mesh file %s: %w", filename, err)
	}
	t = &Topology{}
	if err = yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("unable to parse mesh file %s: %w", filename, err)
	}
	if err = t.Check(); err != nil {
		return nil, fmt.Errorf("mesh file %s failed validation: %w", filename, err)
	}
	return t, nil
}

// WriteTopologyFile stores the topology in YAML form.
func WriteTopologyFile(t *Topology, filename string) (err error) {
	var data []byte
	if data, err = yaml.Marshal(t); err != nil {
		return fmt.Errorf("unable to marshal mesh: %w", err)
	}
	if err = os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("unable to write mesh file %s: %w", filename, err)
	}
	return nil
}
