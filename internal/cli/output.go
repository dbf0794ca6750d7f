package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	outputTable  = "table"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
	outputYAML   = "yaml"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

func validateOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputNDJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (use table, json, ndjson or yaml)", format)
}

// render writes v in format. table writes the human-readable form.
func render(w io.Writer, format string, v any, table func(tw *tabwriter.Writer) error) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputNDJSON:
		return encodeNDJSON(w, v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
		if err := table(tw); err != nil {
			return err
		}
		return tw.Flush()
	}
}

// formatFloat prints f without trailing zeros.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// encodeNDJSON writes one JSON document per line: one per element when v is a
// slice, otherwise v itself.
func encodeNDJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return enc.Encode(v)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := enc.Encode(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}
