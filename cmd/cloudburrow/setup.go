package main

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/thebluefowl/cloudburrow/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store asset host credentials encrypted with a master password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := setup()
		return err
	},
}

var warningStyle = lipgloss.NewStyle().Width(60).Foreground(lipgloss.Color("11"))

func setup() (*config.Config, error) {
	color.New(color.BgWhite).Println("Set up master password")
	fmt.Println(warningStyle.Render("⚠ Forgetting your master password means entering your credentials again. Be sure to write it down somewhere safe."))
	fmt.Println()
	password, err := setupMasterPassword()
	if err != nil {
		return nil, err
	}

	fmt.Println()
	color.New(color.BgWhite).Println("Set up asset host")
	fmt.Println()

	cfg, err := setupConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := config.Save(*cfg, password); err != nil {
		return nil, err
	}

	color.Green("✓ Configuration saved successfully!")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		BorderForeground(lipgloss.Color("63"))

	fmt.Println(boxStyle.Render(fmt.Sprintf("Provider: %s", cfg.Provider)))

	return cfg, nil
}

func setupConfig() (*config.Config, error) {
	var provider string
	if err := survey.AskOne(&survey.Select{
		Message: "Asset host:",
		Options: []string{config.ProviderCloudinary, config.ProviderS3},
		Default: config.ProviderCloudinary,
	}, &provider); err != nil {
		return nil, err
	}

	cfg := &config.Config{Provider: provider}

	if provider == config.ProviderCloudinary {
		questions := []*survey.Question{
			{
				Name:     "cloudname",
				Prompt:   &survey.Input{Message: "Cloudinary Cloud Name:"},
				Validate: survey.Required,
			},
			{
				Name:     "apikey",
				Prompt:   &survey.Input{Message: "Cloudinary API Key:"},
				Validate: survey.Required,
			},
			{
				Name:     "apisecret",
				Prompt:   &survey.Password{Message: "Cloudinary API Secret:"},
				Validate: survey.Required,
			},
			{
				Name:   "folder",
				Prompt: &survey.Input{Message: "Upload Folder:", Help: "optional, e.g. media"},
			},
		}

		var answers struct {
			CloudName string
			APIKey    string
			APISecret string
			Folder    string
		}
		if err := survey.Ask(questions, &answers); err != nil {
			return nil, err
		}

		cfg.CloudName = answers.CloudName
		cfg.APIKey = answers.APIKey
		cfg.APISecret = answers.APISecret
		cfg.Folder = answers.Folder
		return cfg, nil
	}

	var answers s3Answers
	if err := survey.Ask(s3Questions(), &answers); err != nil {
		return nil, err
	}
	answers.apply(cfg)
	return cfg, nil
}

type s3Answers struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	Prefix        string
}

func (a s3Answers) apply(cfg *config.Config) {
	cfg.Bucket = a.Bucket
	cfg.Region = a.Region
	cfg.Endpoint = a.Endpoint
	cfg.AccessKey = a.AccessKey
	cfg.SecretKey = a.SecretKey
	cfg.PublicBaseURL = a.PublicBaseURL
	cfg.Prefix = a.Prefix
}

func s3Questions() []*survey.Question {
	return []*survey.Question{
		{
			Name:     "bucket",
			Prompt:   &survey.Input{Message: "Bucket Name:"},
			Validate: survey.Required,
		},
		{
			Name: "region",
			Prompt: &survey.Input{
				Message: "Region:",
				Default: "us-west-002",
				Help:    "e.g., us-east-1, us-west-002, auto",
			},
			Validate: survey.Required,
		},
		{
			Name: "endpoint",
			Prompt: &survey.Input{
				Message: "Endpoint:",
				Help:    "leave empty for AWS, e.g. https://s3.us-west-002.backblazeb2.com",
			},
		},
		{
			Name:     "accesskey",
			Prompt:   &survey.Input{Message: "Access Key ID:"},
			Validate: survey.Required,
		},
		{
			Name:     "secretkey",
			Prompt:   &survey.Password{Message: "Secret Access Key:"},
			Validate: survey.Required,
		},
		{
			Name:   "publicbaseurl",
			Prompt: &survey.Input{Message: "Public Base URL:", Help: "optional CDN or bucket URL used for secure_url"},
		},
		{
			Name:   "prefix",
			Prompt: &survey.Input{Message: "Key Prefix:", Help: "optional, e.g. media/"},
		},
	}
}

func setupMasterPassword() (string, error) {
	questions := []*survey.Question{
		{
			Name:     "password",
			Prompt:   &survey.Password{Message: "Master Password:"},
			Validate: survey.Required,
		},
		{
			Name:     "confirm",
			Prompt:   &survey.Password{Message: "Confirm Master Password:"},
			Validate: survey.Required,
		},
	}

	var answers struct {
		Password string
		Confirm  string
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return "", err
	}

	if answers.Password != answers.Confirm {
		color.Red("Passwords do not match")
		return "", errors.New("passwords do not match")
	}

	color.Green("✓ Master password created successfully!")
	return answers.Password, nil
}
