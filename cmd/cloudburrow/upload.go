package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/thebluefowl/cloudburrow/internal/cms"
	"github.com/thebluefowl/cloudburrow/internal/progress"
	"gopkg.in/yaml.v3"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file through the collection's lifecycle hooks",
	Long:  `Creates a document for the file in the upload collection. The pre-save hook stores the file on the asset host and the read hook points url and filename at it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

// runUpload is the main entry point for the upload command
func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sourcePath := args[0]

	pcfg, err := loadPluginConfig()
	if err != nil {
		return err
	}
	if err := ensureManaged(pcfg); err != nil {
		return err
	}

	cfg, err := loadOrSetupConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	gw, err := initGateway(ctx, cfg)
	if err != nil {
		return err
	}

	data, err := progress.ReadFile(sourcePath, "📖 READ   ")
	if err != nil {
		return err
	}

	filename := filepath.Base(sourcePath)
	req := &cms.Request{Files: map[string]*cms.File{
		cms.FileField: {Name: filename, Data: data},
	}}

	rt := cms.NewRuntime(composeHost(pcfg, gw), logger)
	doc, err := rt.Create(ctx, collectionSlug, req, cms.Document{"filename": filename})
	if err != nil {
		return err
	}

	printUploadSuccess(doc)
	return nil
}

// printUploadSuccess displays the projected document
func printUploadSuccess(doc cms.Document) {
	color.Green("✓ Successfully uploaded: %v\n", doc["url"])

	out, err := yaml.Marshal(doc)
	if err != nil {
		return
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		BorderForeground(lipgloss.Color("63"))
	fmt.Println(boxStyle.Render(string(out)))
}
