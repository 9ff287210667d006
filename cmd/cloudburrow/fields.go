package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thebluefowl/cloudburrow/internal/cms"
	"gopkg.in/yaml.v3"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Print the collection schema with the asset field group installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pcfg, err := loadPluginConfig()
		if err != nil {
			return err
		}

		// no gateway needed to describe the schema
		host := composeHost(pcfg, nil)
		return printSchema(cmd, host)
	},
}

func printSchema(cmd *cobra.Command, host *cms.Config) error {
	out, err := yaml.Marshal(host)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
