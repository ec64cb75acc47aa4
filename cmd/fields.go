package cmd

import (
	"snipe-netbox-sync/core/netbox"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// fieldsCmd represents the fields command
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Create or update the NetBox custom field",
	Long:  `Ensures the snipe_object_id custom field exists on every synced NetBox object type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		def := netbox.ForeignKeyDefinition()
		created, err := a.registry.EnsureCustomField(cmd.Context(), def)
		if err != nil {
			return err
		}
		a.logger.Info("Custom field is ready",
			zap.String("field", def.Name),
			zap.Bool("created", created),
			zap.Strings("object_types", def.ObjectTypes))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(fieldsCmd)
}
