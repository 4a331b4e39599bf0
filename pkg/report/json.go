package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON emits the report as indented JSON. Field order follows the
// struct declaration, so identical reports serialize to identical
// bytes.
func WriteJSON(w io.Writer, data *Data) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}
