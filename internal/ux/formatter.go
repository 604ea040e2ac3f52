// Package ux renders command output: structured formats for scripting
// and toast-style status lines for humans.
package ux

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Print writes data to w in the requested format. The text format calls
// renderText, which commands use for human-readable tables and panels;
// json and yaml marshal data directly for scripting.
func Print(w io.Writer, format string, data interface{}, renderText func(io.Writer) error) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(data)
	case "text", "":
		return renderText(w)
	default:
		return fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
}
