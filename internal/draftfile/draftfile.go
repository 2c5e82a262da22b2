// Package draftfile reads recipe drafts from YAML or TOML files for
// non-interactive submission.
package draftfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/models"
)

// Text is a draft value. Files may write numbers bare or quoted; both end up
// as the text the form would have received.
type Text string

func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*t = Text(node.Value)
	return nil
}

func (t *Text) UnmarshalTOML(v interface{}) error {
	switch val := v.(type) {
	case string:
		*t = Text(val)
	case int64:
		*t = Text(strconv.FormatInt(val, 10))
	case float64:
		*t = Text(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		return fmt.Errorf("unsupported value %v of type %T", v, v)
	}
	return nil
}

// keys maps file keys to form fields, in the order they should be applied.
var keys = []struct {
	key   string
	field models.FieldName
}{
	{"name", models.FieldDishName},
	{"preparation_time", models.FieldPreparationTime},
	{"type", models.FieldDishType},
	{"no_of_slices", models.FieldNoOfSlices},
	{"diameter", models.FieldDiameter},
	{"spiciness_scale", models.FieldSpicinessScale},
	{"slices_of_bread", models.FieldSlicesOfBread},
}

// Entry is one field/value pair of a draft.
type Entry struct {
	Field models.FieldName
	Value string
}

// Load reads the draft at path. The extension picks the format: .yaml and
// .yml for YAML, .toml for TOML.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domainErrors.ErrDraftFile.WithError(err).WithContext("path", path)
	}

	raw := map[string]Text{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, domainErrors.ErrDraftFile.WithError(err).WithContext("path", path)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, domainErrors.ErrDraftFile.WithError(err).WithContext("path", path)
		}
	default:
		return nil, domainErrors.ErrDraftFile.
			WithError(fmt.Errorf("unsupported extension %q", filepath.Ext(path))).
			WithContext("path", path)
	}

	return entries(raw, path)
}

func entries(raw map[string]Text, path string) ([]Entry, error) {
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k.key] = true
	}
	for k := range raw {
		if !known[k] {
			return nil, domainErrors.ErrDraftFile.
				WithError(fmt.Errorf("unknown key %q", k)).
				WithContext("path", path)
		}
	}

	out := make([]Entry, 0, len(raw))
	for _, k := range keys {
		if v, ok := raw[k.key]; ok {
			out = append(out, Entry{Field: k.field, Value: string(v)})
		}
	}
	return out, nil
}
