package vars

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
)

// ErrNonScalarValue is returned when a dictionary entry is a list or mapping.
var ErrNonScalarValue = errors.New("dictionary value must be a scalar")

// Dictionary maps variable names to replacement text. Entries whose source value
// was empty, false, zero or null are absent, so their tokens stay unresolved.
type Dictionary map[string]string

// Keys returns the dictionary keys in sorted order.
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadDictionary reads a JSON or YAML mapping from path. A missing file yields an
// empty dictionary unless required is set, in which case it is a config error.
func LoadDictionary(path string, required bool) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Dictionary{}, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "variable dictionary not found").
				WithPath(path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read variable dictionary").
			WithPath(path).
			Build()
	}

	dict, err := ParseDictionary(data)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid variable dictionary").
			WithPath(path).
			Build()
	}
	return dict, nil
}

// ParseDictionary decodes a top-level mapping. JSON input is accepted since it
// is valid YAML. A key given more than once keeps its last value, as JSON
// parsers do; explicit keys win over entries pulled in with a YAML merge key.
func ParseDictionary(data []byte) (Dictionary, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Dictionary{}, nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return Dictionary{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode dictionary: line %d: top level must be a mapping", root.Line)
	}

	merged := make(map[string]any)
	explicit := make(map[string]any)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := resolveAlias(root.Content[i])
		valueNode := root.Content[i+1]

		if keyNode.ShortTag() == "!!merge" {
			var entries map[string]any
			if err := valueNode.Decode(&entries); err != nil {
				return nil, fmt.Errorf("decode dictionary: line %d: %w", valueNode.Line, err)
			}
			for k, v := range entries {
				merged[k] = v
			}
			continue
		}

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		explicit[keyNode.Value] = value
	}
	for k, v := range explicit {
		merged[k] = v
	}

	dict := make(Dictionary, len(merged))
	for key, value := range merged {
		text, ok, err := render(value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if ok {
			dict[key] = text
		}
	}
	return dict, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// render converts a decoded scalar to its replacement text. ok is false for
// values that must leave the token unresolved.
func render(value any) (string, bool, error) {
	switch v := value.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, v != "", nil
	case bool:
		return "true", v, nil
	case int:
		return strconv.Itoa(v), v != 0, nil
	case int64:
		return strconv.FormatInt(v, 10), v != 0, nil
	case uint64:
		return strconv.FormatUint(v, 10), v != 0, nil
	case float64:
		if v == 0 || math.IsNaN(v) {
			return "", false, nil
		}
		return formatFloat(v), true, nil
	case []any, map[string]any:
		return "", false, ErrNonScalarValue
	default:
		return fmt.Sprint(v), true, nil
	}
}

// formatFloat renders f the way a JavaScript number prints: plain decimals
// from 1e-6 up to 1e21, exponent notation outside that range.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
