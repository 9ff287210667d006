package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/thebluefowl/cloudburrow/internal/cms"
	"github.com/thebluefowl/cloudburrow/internal/config"
	"github.com/thebluefowl/cloudburrow/internal/field"
	"github.com/thebluefowl/cloudburrow/internal/plugin"
	"github.com/thebluefowl/cloudburrow/internal/storage"
	"github.com/thebluefowl/cloudburrow/internal/storage/cloudinary"
	"github.com/thebluefowl/cloudburrow/internal/storage/s3"
)

// loadOrSetupConfig prefers credentials from the environment, then the
// encrypted store, and runs setup when neither exists. Incomplete
// environment credentials are completed from the store.
func loadOrSetupConfig() (*config.Config, error) {
	envCfg, ok, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if ok {
		verr := envCfg.Validate()
		if verr == nil {
			logger.Debug("using credentials from environment", "provider", envCfg.Provider)
			return envCfg, nil
		}
		if !config.Exists() {
			return nil, verr
		}
		logger.Debug("completing environment credentials from store", "provider", envCfg.Provider)
	}

	if !ok && !config.Exists() {
		return setup()
	}

	password, err := askMasterPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to get master password: %w", err)
	}

	stored, err := config.Load(password)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if !ok {
		return stored, nil
	}

	return completeFromStore(envCfg, stored)
}

// completeFromStore fills the unset environment credentials from the
// stored ones.
func completeFromStore(envCfg, stored *config.Config) (*config.Config, error) {
	envCfg.Merge(stored)
	if err := envCfg.Validate(); err != nil {
		return nil, err
	}
	return envCfg, nil
}

// initGateway builds the gateway for the configured provider.
func initGateway(ctx context.Context, cfg *config.Config) (storage.Gateway, error) {
	switch cfg.Provider {
	case config.ProviderCloudinary:
		c, err := cloudinary.New(&cloudinary.Opts{
			URL:       cfg.CloudinaryURL,
			CloudName: cfg.CloudName,
			APIKey:    cfg.APIKey,
			APISecret: cfg.APISecret,
			Folder:    cfg.Folder,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderS3:
		c, err := s3.New(ctx, &s3.Opts{
			Bucket:        cfg.Bucket,
			Region:        cfg.Region,
			Endpoint:      cfg.Endpoint,
			AccessKey:     cfg.AccessKey,
			SecretKey:     cfg.SecretKey,
			Prefix:        cfg.Prefix,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
	}
}

func loadPluginConfig() (*plugin.Config, error) {
	if pluginConfigPath == "" {
		pcfg := plugin.Default(collectionSlug)
		pcfg.Collections[collectionSlug].RequiredFields = field.Names(requiredFields...)
		return pcfg, nil
	}
	return plugin.LoadConfig(pluginConfigPath)
}

// hostConfig describes the collections the CLI operates on: every collection
// named in the plugin configuration, as an upload collection.
func hostConfig(pcfg *plugin.Config) *cms.Config {
	host := &cms.Config{}
	seen := map[string]bool{}
	add := func(slug string) {
		if seen[slug] {
			return
		}
		seen[slug] = true
		host.Collections = append(host.Collections, &cms.Collection{
			Slug:   slug,
			Upload: true,
			Fields: []field.Spec{field.GetPartialField("filename"), field.GetPartialField("url")},
		})
	}

	add(collectionSlug)
	slugs := make([]string, 0, len(pcfg.Collections))
	for slug := range pcfg.Collections {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		add(slug)
	}
	return host
}

// ensureManaged fails when the plugin installs no hooks on the collection
// the command operates on.
func ensureManaged(pcfg *plugin.Config) error {
	if !plugin.Enabled(pcfg, collectionSlug) {
		return fmt.Errorf("collection %q is not enabled in the plugin configuration", collectionSlug)
	}
	return nil
}

// composeHost applies the plugin bound to gw and reports skipped entries.
func composeHost(pcfg *plugin.Config, gw storage.Gateway) *cms.Config {
	host := hostConfig(pcfg)
	for _, slug := range plugin.Skipped(pcfg, host) {
		logger.Debug("plugin skipped collection", "collection", slug)
	}
	return host.Apply(plugin.New(pcfg, gw))
}
