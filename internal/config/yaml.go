package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FileCategories is the ordered classification table as written in YAML:
//
//	file_categories:
//	  code:
//	    programming: [.py, .cpp]
//	  archives: [.zip, .7z]
//
// A category maps either to an extension list (flat) or to subcategories.
// Order is kept so that listings and merges are stable.
type FileCategories []Category

// Category is one top-level entry of file_categories
type Category struct {
	Name          string
	Extensions    []string
	Subcategories []Subcategory
}

// Subcategory is a named extension list inside a nested category
type Subcategory struct {
	Name       string
	Extensions []string
}

// IsFlat reports whether the category lists extensions directly
func (c Category) IsFlat() bool {
	return c.Subcategories == nil
}

// Find returns the category with the given name
func (fc FileCategories) Find(name string) (Category, bool) {
	for _, c := range fc {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// UnmarshalYAML decodes the mapping while keeping key order
func (fc *FileCategories) UnmarshalYAML(node *yaml.Node) error {
	if isNull(node) {
		*fc = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: file_categories must be a mapping", node.Line)
	}

	out := make(FileCategories, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		cat := Category{Name: key.Value}

		switch {
		case isNull(val):
			cat.Extensions = []string{}
		case val.Kind == yaml.SequenceNode:
			if err := val.Decode(&cat.Extensions); err != nil {
				return fmt.Errorf("file_categories.%s: %w", key.Value, err)
			}
		case val.Kind == yaml.MappingNode:
			cat.Subcategories = make([]Subcategory, 0, len(val.Content)/2)
			for j := 0; j+1 < len(val.Content); j += 2 {
				subKey, subVal := val.Content[j], val.Content[j+1]
				sub := Subcategory{Name: subKey.Value}
				if !isNull(subVal) {
					if err := subVal.Decode(&sub.Extensions); err != nil {
						return fmt.Errorf("file_categories.%s.%s: %w", key.Value, subKey.Value, err)
					}
				}
				cat.Subcategories = append(cat.Subcategories, sub)
			}
		default:
			return fmt.Errorf("line %d: file_categories.%s must be a list or a mapping", val.Line, key.Value)
		}

		out = append(out, cat)
	}

	*fc = out
	return nil
}

// MarshalYAML writes the categories back as an ordered mapping
func (fc FileCategories) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, cat := range fc {
		var val yaml.Node
		if cat.IsFlat() {
			if err := val.Encode(nonNil(cat.Extensions)); err != nil {
				return nil, err
			}
		} else {
			val.Kind = yaml.MappingNode
			for _, sub := range cat.Subcategories {
				var subVal yaml.Node
				if err := subVal.Encode(nonNil(sub.Extensions)); err != nil {
					return nil, err
				}
				val.Content = append(val.Content, scalar(sub.Name), &subVal)
			}
		}
		root.Content = append(root.Content, scalar(cat.Name), &val)
	}
	return root, nil
}

// Subfolders of a project structure folder. YAML accepts a plain list of
// names or a mapping of name → list of child folder names.
type Subfolders []Subfolder

// Subfolder is a folder with optional children one level deeper
type Subfolder struct {
	Name     string
	Children []string
}

// UnmarshalYAML accepts both the list and the mapping form
func (s *Subfolders) UnmarshalYAML(node *yaml.Node) error {
	switch {
	case isNull(node):
		*s = nil
	case node.Kind == yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		out := make(Subfolders, 0, len(names))
		for _, n := range names {
			out = append(out, Subfolder{Name: n})
		}
		*s = out
	case node.Kind == yaml.MappingNode:
		out := make(Subfolders, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			sf := Subfolder{Name: node.Content[i].Value}
			if val := node.Content[i+1]; !isNull(val) {
				if err := val.Decode(&sf.Children); err != nil {
					return fmt.Errorf("subfolders.%s: %w", sf.Name, err)
				}
			}
			out = append(out, sf)
		}
		*s = out
	default:
		return fmt.Errorf("line %d: subfolders must be a list or a mapping", node.Line)
	}
	return nil
}

// MarshalYAML emits a list when no subfolder has children
func (s Subfolders) MarshalYAML() (interface{}, error) {
	nested := false
	for _, sf := range s {
		if len(sf.Children) > 0 {
			nested = true
			break
		}
	}

	if !nested {
		names := make([]string, 0, len(s))
		for _, sf := range s {
			names = append(names, sf.Name)
		}
		return names, nil
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, sf := range s {
		var val yaml.Node
		if err := val.Encode(nonNil(sf.Children)); err != nil {
			return nil, err
		}
		root.Content = append(root.Content, scalar(sf.Name), &val)
	}
	return root, nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
