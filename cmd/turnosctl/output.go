package main

import (
	"encoding/json"
	"fmt"
	"io"

	jmespath "github.com/jmespath-community/go-jmespath"
)

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

// emit prints v as indented JSON, filtered through query when it is set.
func emit(w io.Writer, query string, v any) error {
	out := v
	if query != "" {
		if _, err := jmespath.Compile(query); err != nil {
			return fmt.Errorf("%w: invalid query: %w", errUsage, err)
		}
		// Round-trip so the expression sees JSON field names, not Go ones.
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("decode output: %w", err)
		}
		out, err = jmespath.Search(query, data)
		if err != nil {
			return fmt.Errorf("apply query: %w", err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
