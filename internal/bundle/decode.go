package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/cellkit/internal/cell"
)

// Format identifies a template file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// extensions lists template file extensions in lookup order.
var extensions = []struct {
	ext    string
	format Format
}{
	{".yaml", FormatYAML},
	{".yml", FormatYAML},
	{".toml", FormatTOML},
}

// formatFor returns the format for a file name, or "" when unsupported.
func formatFor(name string) Format {
	for _, e := range extensions {
		if strings.HasSuffix(name, e.ext) {
			return e.format
		}
	}
	return ""
}

// decodeLayout parses data in the given format. Unknown keys are rejected
// so typos in template files fail loudly instead of rendering defaults.
func decodeLayout(format Format, data []byte) (cell.Layout, error) {
	var layout cell.Layout

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&layout); err != nil && !errors.Is(err, io.EOF) {
			return cell.Layout{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &layout)
		if err != nil {
			return cell.Layout{}, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cell.Layout{}, fmt.Errorf("decode toml: unknown keys %v", undecoded)
		}
	default:
		return cell.Layout{}, fmt.Errorf("unsupported template format %q", format)
	}

	if err := validateLayout(layout); err != nil {
		return cell.Layout{}, err
	}
	return layout, nil
}

func validateLayout(l cell.Layout) error {
	if l.Height < 0 || l.Width < 0 {
		return fmt.Errorf("height and width must not be negative")
	}
	if len(l.Padding) > 2 {
		return fmt.Errorf("padding takes at most 2 values, got %d", len(l.Padding))
	}
	for i, slot := range l.Slots {
		if slot.Key == "" {
			return fmt.Errorf("slot %d: key is required", i)
		}
		if slot.Width < 0 {
			return fmt.Errorf("slot %d (%s): width must not be negative", i, slot.Key)
		}
		switch slot.Align {
		case "", "left", "center", "right":
		default:
			return fmt.Errorf("slot %d (%s): invalid align %q (must be \"left\", \"center\" or \"right\")", i, slot.Key, slot.Align)
		}
	}
	return nil
}
