package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"snipe-netbox-sync/feature/inventory"

	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [phases...]",
	Short: "Sync Snipe-IT into NetBox",
	Long: `Runs the sync once. Phases are tenants, manufacturers, devicetypes, locations
and devices; without arguments every phase runs. Phases always run in that order.

Flags override the policy from the configuration for this run.`,
	ValidArgs: []string{"tenants", "manufacturers", "devicetypes", "locations", "devices"},
	RunE: func(cmd *cobra.Command, args []string) error {
		phases, err := inventory.ParsePhases(args)
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		policy := a.cfg.Sync.Policy()
		flags := cmd.Flags()
		if flags.Changed("allow-update") {
			policy.AllowUpdates, _ = flags.GetBool("allow-update")
		}
		if flags.Changed("allow-linking") {
			policy.AllowLinking, _ = flags.GetBool("allow-linking")
		}
		if flags.Changed("update-unique-existing") {
			policy.UpdateUniqueExisting, _ = flags.GetBool("update-unique-existing")
		}
		if flags.Changed("no-append-assettag") {
			policy.NoAppendAssetTag, _ = flags.GetBool("no-append-assettag")
		}

		result, err := a.service.Run(cmd.Context(), inventory.RunRequest{Policy: policy, Phases: phases})

		if jsonOutput, _ := flags.GetBool("json"); jsonOutput && result != nil {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(result); encErr != nil {
				return fmt.Errorf("failed to write report: %w", encErr)
			}
		}
		return err
	},
}

func init() {
	syncCmd.Flags().Bool("allow-update", false, "Update NetBox objects whose values diverged from Snipe-IT")
	syncCmd.Flags().Bool("allow-linking", false, "Link existing NetBox objects found by name")
	syncCmd.Flags().Bool("update-unique-existing", false, "Match devices by name and tenant when the asset name is unique")
	syncCmd.Flags().Bool("no-append-assettag", false, "Do not append the asset tag to unique device names")
	syncCmd.Flags().Bool("json", false, "Print the run report as JSON")
	RootCmd.AddCommand(syncCmd)
}
