// Package plugin installs the asset field group and lifecycle hooks onto the
// collections of a framework configuration.
package plugin

import (
	"github.com/thebluefowl/cloudburrow/internal/cms"
	"github.com/thebluefowl/cloudburrow/internal/field"
	"github.com/thebluefowl/cloudburrow/internal/hooks"
	"github.com/thebluefowl/cloudburrow/internal/storage"
)

// New returns a plugin that, for every enabled collection of cfg present in
// the framework configuration, appends the field.GroupName group and
// registers the hooks bound to gw. Entries that cannot be applied are
// skipped; the returned plugin never fails and performs no I/O.
func New(cfg *Config, gw storage.Gateway) cms.Plugin {
	set := hooks.New(gw)

	return func(host *cms.Config) *cms.Config {
		if host == nil || cfg == nil || len(cfg.Collections) == 0 {
			return host
		}

		for _, col := range host.Collections {
			if col == nil {
				continue
			}
			opts := cfg.Collections[col.Slug]
			if !opts.usable() || col.HasField(field.GroupName) {
				continue
			}

			col.Fields = append(col.Fields, field.Group(opts.RequiredFields))
			col.Hooks.AddBeforeChange(set)
			col.Hooks.AddAfterDelete(set)
			col.Hooks.AddAfterRead(set)
		}
		return host
	}
}

// Enabled reports whether cfg enables the plugin for slug.
func Enabled(cfg *Config, slug string) bool {
	return cfg != nil && cfg.Collections[slug].usable()
}

// Skipped lists the configured collection slugs New would not install onto
// host, sorted by slug.
func Skipped(cfg *Config, host *cms.Config) []string {
	var out []string
	for _, slug := range cfg.slugs() {
		col := host.Collection(slug)
		if !cfg.Collections[slug].usable() || col == nil || col.HasField(field.GroupName) {
			out = append(out, slug)
		}
	}
	return out
}
