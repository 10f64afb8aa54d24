package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Texter renders a value for humans in the text format.
type Texter interface {
	WriteText(w io.Writer) error
}

// Write writes output in the requested format.
//
// Supported formats:
// - text (default): Texter values render themselves, anything else via fmt
// - json
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "text":
		return WriteText(w, v)
	case "json":
		return WriteJSON(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func WriteText(w io.Writer, v any) error {
	if t, ok := v.(Texter); ok {
		return t.WriteText(w)
	}
	_, err := fmt.Fprintln(w, v)
	return err
}

// WriteJSON writes strict JSON, one document per call.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
