package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML emits the report as YAML for pipelines that post-process
// results outside Go.
func WriteYAML(w io.Writer, data *Data) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()

	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}
