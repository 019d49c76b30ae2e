package filters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Encode
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Formats lists the supported output formats
var Formats = []string{FormatYAML, FormatJSON, FormatTOML}

// Encode writes the filter map (id to patterns) in the given format.
// YAML and JSON keep rule order; TOML keys are sorted by the encoder.
func Encode(w io.Writer, rules []types.FilterRule, format string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatYAML, "yml", "":
		data, err = encodeYAML(rules)
	case FormatJSON:
		data, err = encodeJSON(rules)
	case FormatTOML:
		data, err = toml.Marshal(patternMap(rules))
	default:
		return errors.Newf(errors.ErrInvalidInput, "unsupported filter format %q", format).
			WithDetail("supported", Formats)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to encode filters as %s", format)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write filters: %w", err)
	}
	return nil
}

func patternMap(rules []types.FilterRule) map[string][]string {
	m := make(map[string][]string, len(rules))
	for _, r := range rules {
		m[r.ID.ID()] = r.Patterns()
	}
	return m
}

func encodeYAML(rules []types.FilterRule) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, r := range rules {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.ID.ID()}
		list := &yaml.Node{Kind: yaml.SequenceNode}
		for _, p := range r.Patterns() {
			list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p})
		}
		root.Content = append(root.Content, key, list)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeJSON writes an object whose keys follow rule order
func encodeJSON(rules []types.FilterRule) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, r := range rules {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(r.ID.ID())
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.Patterns())
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if len(rules) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
