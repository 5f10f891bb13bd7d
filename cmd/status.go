package cmd

import (
	"fmt"
	"strings"

	"beammp-manager/feature/integrity/checks"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the managed instance",
	RunE: func(cmd *cobra.Command, args []string) error {
		checkUpdate, _ := cmd.Flags().GetBool("check-update")
		limit, _ := cmd.Flags().GetInt("history")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		layout := rt.manager.Layout()
		fmt.Printf("Directory: %s\n", layout.Dir)
		fmt.Printf("State:     %s\n", rt.manager.State())
		if v, ok := rt.versions.ReadLocal(); ok {
			fmt.Printf("Version:   %s\n", v)
		} else {
			fmt.Println("Version:   unknown")
		}

		report, err := checks.CheckConfig(layout.ConfigPath(), rt.authoritative())
		if err != nil {
			fmt.Printf("Config:    %v\n", err)
		} else if report.Settings != nil {
			fmt.Printf("Config:    %s (name=%q port=%d max_players=%d)\n",
				report.Path, report.Settings.Name, report.Settings.Port, report.Settings.MaxPlayers)
			for _, d := range report.Drift {
				fmt.Printf("  drift:   %s\n", d)
			}
		} else if report.Exists {
			fmt.Printf("Config:    %s (unreadable: %s)\n", report.Path, strings.Join(report.Errors, "; "))
		} else {
			fmt.Printf("Config:    %s (missing)\n", report.Path)
		}

		if checkUpdate {
			status, err := rt.manager.CheckUpdate(cmd.Context())
			if err != nil {
				fmt.Printf("Update:    %v\n", err)
			} else if status.Available {
				fmt.Printf("Update:    %s available\n", status.Remote)
			} else {
				fmt.Println("Update:    up-to-date")
			}
		}

		if limit > 0 {
			events, err := rt.history.Recent(cmd.Context(), rt.cfg.Instance.ServerID, limit)
			if err != nil {
				return err
			}
			for _, e := range events {
				result := "ok"
				if !e.Success {
					result = "failed"
				}
				fmt.Printf("%s  %-8s %-10s %-6s %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Operation, e.Version, result, e.Message)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
	statusCmd.Flags().Bool("check-update", false, "Query the latest release")
	statusCmd.Flags().Int("history", 10, "Number of recent lifecycle events to show")
}
