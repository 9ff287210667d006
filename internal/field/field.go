package field

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// GroupName is the reserved document key under which the remote asset
// metadata is embedded.
const GroupName = "cloudinary"

// Type is the semantic type tag handed to the host schema engine.
type Type string

const (
	TypeText     Type = "text"
	TypeNumber   Type = "number"
	TypeCheckbox Type = "checkbox"
	TypeGroup    Type = "group"
)

// Admin carries presentation policy for the host admin UI.
type Admin struct {
	ReadOnly bool `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	Hidden   bool `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// Spec is a declarative schema field descriptor.
type Spec struct {
	Name   string `yaml:"name" json:"name"`
	Type   Type   `yaml:"type,omitempty" json:"type,omitempty"`
	Label  string `yaml:"label,omitempty" json:"label,omitempty"`
	Admin  Admin  `yaml:"admin,omitempty" json:"admin,omitempty"`
	Fields []Spec `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// UnmarshalYAML accepts either a bare field name or a full mapping.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		*s = Spec{Name: name}
		return nil
	case yaml.MappingNode:
		// alias drops the method set so Decode does not recurse
		type plain Spec
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*s = Spec(p)
		return nil
	default:
		return fmt.Errorf("field spec at line %d: expected name or mapping", node.Line)
	}
}
