package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// FormatJSON writes the result as JSON to the writer.
// An indent of zero produces compact output.
func (r Result) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(r, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(r)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the result as YAML to the writer.
// An indent of zero produces flow-style output.
func (r Result) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, r.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatEnv writes one NAME=VALUE line per variable, in name order.
//
// Texts that are empty or contain whitespace or "#" are double-quoted.
// Mappings with a single entry and nested collections cannot be read back
// to the same value.
func (v Vars) FormatEnv(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, name := range v.Keys() {
		if _, err := fmt.Fprintf(bw, "%s=%s\n", name, envValue(v[name])); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func envValue(v Value) string {
	s := v.String()
	if v.Kind() != KindText {
		return s
	}

	if s == "" || strings.ContainsAny(s, " \t#") {
		return `"` + s + `"`
	}

	return s
}
