package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// FromEnv reads credentials from the environment. ok is false when no
// credentials are set there. A CLOUDINARY_URL without an explicit provider
// selects cloudinary, an S3 bucket selects s3.
func FromEnv() (cfg *Config, ok bool, err error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, false, fmt.Errorf("parse env: %w", err)
	}

	if c.Provider == "" {
		switch {
		case c.CloudinaryURL != "" || c.CloudName != "":
			c.Provider = ProviderCloudinary
		case c.Bucket != "":
			c.Provider = ProviderS3
		default:
			return nil, false, nil
		}
	}
	c.Provider = strings.ToLower(c.Provider)
	return &c, true, nil
}

// Merge fills the unset fields of c from other.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Provider, other.Provider)
	fill(&c.CloudinaryURL, other.CloudinaryURL)
	fill(&c.CloudName, other.CloudName)
	fill(&c.APIKey, other.APIKey)
	fill(&c.APISecret, other.APISecret)
	fill(&c.Folder, other.Folder)
	fill(&c.Bucket, other.Bucket)
	fill(&c.Region, other.Region)
	fill(&c.Endpoint, other.Endpoint)
	fill(&c.AccessKey, other.AccessKey)
	fill(&c.SecretKey, other.SecretKey)
	fill(&c.PublicBaseURL, other.PublicBaseURL)
	fill(&c.Prefix, other.Prefix)
}
