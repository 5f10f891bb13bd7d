package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the latest BeamMP server release",
	Long: `Downloads the latest BeamMP-Server release into the instance directory, records its
version and writes a default ServerConfig.toml when none exists. An existing
configuration document is never overwritten.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		out := rt.manager.Install(cmd.Context(), rt.authoritative())
		if !out.OK() {
			return fmt.Errorf("installation failed: %w", out.Err)
		}
		fmt.Println(out.Notice)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(installCmd)
}
