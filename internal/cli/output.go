package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// printResult writes text, or data as indented JSON when the json format is selected.
func printResult(w io.Writer, opts *RootOptions, text string, data any) error {
	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
