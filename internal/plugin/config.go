package plugin

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/thebluefowl/cloudburrow/internal/field"
	"gopkg.in/yaml.v3"
)

// CollectionOptions configures the plugin for one collection.
type CollectionOptions struct {
	Enabled bool `yaml:"enabled"`
	// RequiredFields are merged with field.DefaultRequiredFields.
	RequiredFields []field.Spec `yaml:"required_fields"`
}

func (o *CollectionOptions) usable() bool {
	return o != nil && o.Enabled
}

// Config maps collection slugs to their options.
type Config struct {
	Collections map[string]*CollectionOptions `yaml:"collections"`
}

func (c *Config) slugs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.Collections))
	for slug := range c.Collections {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// ParseConfig decodes a YAML plugin configuration.
//
//	collections:
//	  media:
//	    enabled: true
//	    required_fields: [width, height, {name: caption, type: text}]
func ParseConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode plugin config: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads a YAML plugin configuration file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plugin config %s: %w", path, err)
	}
	defer f.Close()
	return ParseConfig(f)
}

// Default enables the plugin for a single collection with the default fields.
func Default(slug string) *Config {
	return &Config{Collections: map[string]*CollectionOptions{slug: {Enabled: true}}}
}
