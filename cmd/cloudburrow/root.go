package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	pluginConfigPath string
	collectionSlug   string
	requiredFields   []string
	verbose          bool

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "cloudburrow",
	Short: "Remote asset hosting for CMS upload collections",
	Long:  `Moves uploaded files of CMS collections to Cloudinary or an S3-compatible bucket and keeps the asset metadata on the document.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&pluginConfigPath, "plugin-config", "p", "", "YAML plugin configuration (default: enable the plugin on --collection)")
	rootCmd.PersistentFlags().StringVarP(&collectionSlug, "collection", "c", "media", "Upload collection to operate on")
	rootCmd.PersistentFlags().StringSliceVarP(&requiredFields, "fields", "f", nil, "Extra asset fields to store when no plugin configuration is given")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(fieldsCmd)
}
