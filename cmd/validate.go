package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check an installation for the required files",
	Long: `Without arguments, checks that the server executable and ServerConfig.toml exist
in the instance directory. With a path, checks an existing installation before
importing it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		v := rt.manager.CheckInstall()
		if len(args) == 1 {
			v = rt.manager.IsImportValid(args[0])
		}

		if !v.Valid() {
			return errors.New(v.Message())
		}
		fmt.Printf("%s is a valid installation\n", v.Path)
		if len(v.MissingFields) > 0 {
			fmt.Printf("Settings missing from the configuration (added on next start): %s\n", strings.Join(v.MissingFields, ", "))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
