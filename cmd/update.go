package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the server to the latest release",
	Long: `Compares the installed version with the latest release and downloads it when the
tags differ. Use --check to only report whether an update is available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		if checkOnly {
			status, err := rt.manager.CheckUpdate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Installed: %s\nLatest:    %s\n", status.Local, status.Remote)
			if status.Available {
				fmt.Println("An update is available.")
			} else {
				fmt.Println("The server is up-to-date.")
			}
			return nil
		}

		out := rt.manager.Update(cmd.Context())
		if !out.OK() {
			return out.Err
		}
		fmt.Println(out.Notice)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(updateCmd)
	updateCmd.Flags().Bool("check", false, "Only check whether an update is available")
}
