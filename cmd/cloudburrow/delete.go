package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/thebluefowl/cloudburrow/internal/cms"
	"github.com/thebluefowl/cloudburrow/internal/field"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <public-id>",
	Short: "Delete a hosted asset through the collection's delete hook",
	Long:  `Deletes a hosted asset. Pass --resource-type for video and raw assets; without it the provider default is used and a missing asset is an error.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var deleteResourceType string

func init() {
	deleteCmd.Flags().StringVarP(&deleteResourceType, "resource-type", "t", "", "Resource type of the asset (image, video, raw)")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	publicID := args[0]

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

	rt := cms.NewRuntime(composeHost(pcfg, gw), logger)
	id := rt.Insert(collectionSlug, cms.Document{
		field.GroupName: assetRef(publicID, deleteResourceType),
	})
	if err := rt.Delete(ctx, collectionSlug, id, &cms.Request{}); err != nil {
		return err
	}

	color.Green("✓ Deleted %s\n", publicID)
	return nil
}

// assetRef is the embedded group of a document known only by public id.
func assetRef(publicID, resourceType string) map[string]any {
	ref := map[string]any{"public_id": publicID}
	if resourceType != "" {
		ref["resource_type"] = resourceType
	}
	return ref
}
