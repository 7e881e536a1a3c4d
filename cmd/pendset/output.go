package main

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v2"
)

// render writes `v` as YAML or JSON, or calls `text` for the plain text
// format.
func render(w io.Writer, format string, v interface{}, text func(io.Writer) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return text(w)
}
