package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
)

// jsonIndent and yamlIndent are the indentation used for structured command output.
const (
	jsonIndent = 2
	yamlIndent = 2
)

type OutputFormat string

type OutputFormats []OutputFormat

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatText OutputFormat = "text"
)

func AllowedOutputFormats() OutputFormats {
	formats := []OutputFormat{
		FormatJSON,
		FormatText,
		FormatYAML,
	}

	slices.Sort(formats)

	return formats
}

// String converts the formats to a comma separated string.
func (f OutputFormats) String() string {
	efs := f
	out := make([]string, len(efs))
	for i := range efs {
		out[i] = efs[i].String()
	}
	return strings.Join(out, ", ")
}

// String implements fmt.Stringer, and is required by Cobra as part of implementing flag.Value.
func (f *OutputFormat) String() string {
	return strings.ToLower(string(*f))
}

// Set is used by Cobra to set the output format value from a string.
func (f *OutputFormat) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	allowed := AllowedOutputFormats()

	for _, a := range allowed {
		if string(a) == v {
			*f = OutputFormat(v)
			return nil
		}
	}

	return fmt.Errorf("invalid format '%s', must be one of %v", v, allowed.String())
}

// Type is used by Cobra to get the 'type' of an output format for display purposes.
func (f *OutputFormat) Type() string {
	return "format"
}

// NewOutputHandler returns the output.Handler for the given format.
// The printer is only used for FormatText.
func NewOutputHandler[T any](format OutputFormat, w io.Writer, p output.Printer[T]) (output.Handler[T], error) {
	switch format {
	case FormatJSON:
		return output.NewJSONHandler[T](w, jsonIndent), nil
	case FormatYAML:
		return output.NewYAMLHandler[T](w, yamlIndent), nil
	case FormatText, "":
		if p == nil {
			return nil, fmt.Errorf("text output requires a printer")
		}
		return output.NewTextHandler[T](w, p), nil
	default:
		return nil, fmt.Errorf("unsupported output format '%s'", format)
	}
}
