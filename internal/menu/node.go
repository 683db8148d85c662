package menu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Node is a single entry of a menu forest. A node with children is a
// branch; a node without children is a leaf that may carry a link.
type Node struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	Icon     string `yaml:"icon,omitempty"`
	Link     string `yaml:"link,omitempty"`
	Children []Node `yaml:"children,omitempty"`
}

// Expandable reports whether activating the node toggles its expansion.
// A present but empty Children slice still makes the node a leaf.
func (n Node) Expandable() bool {
	return len(n.Children) > 0
}

// Navigable reports whether activating the node requests navigation.
func (n Node) Navigable() bool {
	return !n.Expandable() && n.Link != ""
}

// Forest is the ordered list of top-level nodes handed to the sidebar.
type Forest []Node

type forestFile struct {
	Items Forest `yaml:"items"`
}

// ParseForest decodes a YAML document. Both a bare sequence of nodes and a
// mapping with an "items" key are accepted.
func ParseForest(data []byte) (Forest, error) {
	var forest Forest
	if err := yaml.Unmarshal(data, &forest); err == nil {
		return forest, nil
	}
	var doc forestFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse menu YAML: %w", err)
	}
	return doc.Items, nil
}

// LoadForest reads and decodes a YAML menu file.
func LoadForest(path string) (Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file %s: %w", path, err)
	}
	forest, err := ParseForest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return forest, nil
}
