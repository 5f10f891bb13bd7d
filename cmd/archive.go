package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage archived server releases",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived releases",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		releases, err := rt.manager.Archived(cmd.Context())
		if err != nil {
			return err
		}
		if len(releases) == 0 {
			fmt.Println("No archived releases")
			return nil
		}
		for _, r := range releases {
			fmt.Printf("%-12s %10d  %s\n", r.Tag, r.Size, r.LastModified.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var archiveRestoreCmd = &cobra.Command{
	Use:   "restore <tag>",
	Short: "Restore an archived release into the instance directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		out := rt.manager.Restore(cmd.Context(), args[0])
		if !out.OK() {
			return out.Err
		}
		fmt.Println(out.Notice)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveRestoreCmd)
}
