package yoloconv

// YOLO dataset configuration (data.yaml) support.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DatasetConfig is the subset of a YOLO dataset YAML file that is relevant for conversion.
type DatasetConfig struct {
	Path  string `yaml:"path"`  // Dataset root, optional.
	Train string `yaml:"train"` // Informational only.
	Val   string `yaml:"val"`   // Informational only.
	Test  string `yaml:"test"`  // Informational only.
	NC    *int   `yaml:"nc"`    // Optional number of classes.

	Names yaml.Node `yaml:"names"` // A sequence of names or a mapping of index to name.

	labels LabelMap
}

// LoadConfig reads and validates the dataset configuration at path.
func LoadConfig(path string) (*DatasetConfig, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return ParseConfig(enc)
}

// ParseConfig parses and validates a YAML encoded dataset configuration.
func ParseConfig(enc []byte) (*DatasetConfig, error) {
	var config DatasetConfig
	if err := yaml.Unmarshal(enc, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	names, err := decodeNames(&config.Names)
	if err != nil {
		return nil, err
	}
	if config.NC != nil && *config.NC != len(names) {
		return nil, fmt.Errorf("%w: nc is %d but %d names are defined", ErrConfig, *config.NC,
			len(names))
	}

	config.labels, err = LabelMapFromEntries(names)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// LabelMap returns the validated label map defined by the names field.
func (c *DatasetConfig) LabelMap() LabelMap {
	return c.labels
}

// resolveAlias follows alias nodes (*name) to the node they refer to.
func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

// decodeNames converts the names node into index to name entries, in document order.
func decodeNames(node *yaml.Node) ([]LabelEntry, error) {
	node = resolveAlias(node)
	if node == nil || node.Kind == 0 {
		return nil, fmt.Errorf("%w: missing field \"names\"", ErrConfig)
	}

	switch node.Kind {
	case yaml.SequenceNode:
		entries := make([]LabelEntry, 0, len(node.Content))
		for i, item := range node.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
				return nil, fmt.Errorf("%w: all labels must be strings, line %d", ErrValidation,
					item.Line)
			}
			entries = append(entries, LabelEntry{ID: i, Name: item.Value})
		}
		return entries, nil

	case yaml.MappingNode:
		entries := make([]LabelEntry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := resolveAlias(node.Content[i]), resolveAlias(node.Content[i+1])

			var id int
			if k.Kind != yaml.ScalarNode || k.ShortTag() != "!!int" || k.Decode(&id) != nil {
				return nil, fmt.Errorf("%w: all label indices must be integers, line %d",
					ErrValidation, k.Line)
			}
			if v.Kind != yaml.ScalarNode || v.ShortTag() != "!!str" {
				return nil, fmt.Errorf("%w: all labels must be strings, line %d", ErrValidation,
					v.Line)
			}
			entries = append(entries, LabelEntry{ID: id, Name: v.Value})
		}
		return entries, nil
	}

	return nil, fmt.Errorf("%w: \"names\" must be a list or a mapping, line %d", ErrConfig,
		node.Line)
}
