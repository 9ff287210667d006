package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"
)

const (
	ProviderCloudinary = "cloudinary"
	ProviderS3         = "s3"
)

var (
	ErrConfigNotFound  = errors.New("config not found")
	ErrUnknownProvider = errors.New("unknown provider")
)

// dirOverride replaces the user config dir in tests.
var dirOverride string

// Config holds the credentials of the remote asset host.
type Config struct {
	Provider string `json:"provider" env:"CLOUDBURROW_PROVIDER"`

	CloudinaryURL string `json:"cloudinary_url,omitempty" env:"CLOUDINARY_URL"`
	CloudName     string `json:"cloud_name,omitempty" env:"CLOUDINARY_CLOUD_NAME"`
	APIKey        string `json:"api_key,omitempty" env:"CLOUDINARY_API_KEY"`
	APISecret     string `json:"api_secret,omitempty" env:"CLOUDINARY_API_SECRET"`
	Folder        string `json:"folder,omitempty" env:"CLOUDBURROW_FOLDER"`

	Bucket        string `json:"bucket,omitempty" env:"CLOUDBURROW_S3_BUCKET"`
	Region        string `json:"region,omitempty" env:"CLOUDBURROW_S3_REGION"`
	Endpoint      string `json:"endpoint,omitempty" env:"CLOUDBURROW_S3_ENDPOINT"`
	AccessKey     string `json:"access_key,omitempty" env:"CLOUDBURROW_S3_ACCESS_KEY"`
	SecretKey     string `json:"secret_key,omitempty" env:"CLOUDBURROW_S3_SECRET_KEY"`
	PublicBaseURL string `json:"public_base_url,omitempty" env:"CLOUDBURROW_S3_PUBLIC_BASE_URL"`
	Prefix        string `json:"prefix,omitempty" env:"CLOUDBURROW_S3_PREFIX"`
}

// Validate checks that the provider's required credentials are present.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderCloudinary:
		if c.CloudinaryURL == "" && (c.CloudName == "" || c.APIKey == "" || c.APISecret == "") {
			return errors.New("cloudinary: CLOUDINARY_URL or cloud name, api key and api secret are required")
		}
	case ProviderS3:
		if c.Bucket == "" || c.Region == "" {
			return errors.New("s3: bucket and region are required")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	return nil
}

// deriveKey creates an encryption key from the user's password
func deriveKey(password string) []byte {
	salt := []byte("cloudburrow-config-salt-v1")
	return pbkdf2.Key([]byte(password), salt, 100000, 32, sha256.New)
}

func configPath() (string, error) {
	dir := dirOverride
	if dir == "" {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get config directory: %w", err)
		}
		dir = filepath.Join(userDir, "cloudburrow")
	}
	return filepath.Join(dir, "config.enc"), nil
}

// Save encrypts the config with a key derived from password and writes it
// to the user config directory.
func Save(cfg Config, password string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	plain, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	sealed, err := encrypt(plain, deriveKey(password))
	if err != nil {
		return fmt.Errorf("failed to encrypt config: %w", err)
	}

	if err := os.WriteFile(path, sealed, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load decrypts the saved config with password.
func Load(password string) (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	sealed, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	plain, err := decrypt(sealed, deriveKey(password))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt config (wrong password?): %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(plain, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Exists reports whether a saved config is present.
func Exists() bool {
	path, err := configPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// encrypt seals data with AES-GCM, prefixing the nonce
func encrypt(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(sealed, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	n := gcm.NonceSize()
	if len(sealed) < n {
		return nil, errors.New("ciphertext too short")
	}
	return gcm.Open(nil, sealed[:n], sealed[n:], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
