package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"beammp-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Run the integrity checks of the managed instance",
	Long: `Checks the installation files, ServerConfig.toml, the history table schema and the
release archive bucket, and cross-checks release tags between them. Checks for
disabled components are reported as skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		svc := integrity.NewService(rt.manager, rt.authoritative(), rt.storage, rt.cfg.Storage, rt.db, rt.logger)
		ctx := cmd.Context()

		if fixFlag {
			if err := svc.FixArchive(ctx); err != nil && !errors.Is(err, integrity.ErrNoArchive) {
				return err
			}
		}

		results := map[string]any{}
		failed := false

		install := svc.CheckInstall()
		results["install"] = install
		if !install.Valid() {
			failed = true
		}

		if report, err := svc.CheckConfig(); err != nil {
			results["config"] = err.Error()
			failed = true
		} else {
			results["config"] = report
		}

		if report, err := svc.CheckHistory(); errors.Is(err, integrity.ErrNoDatabase) {
			results["history"] = "skipped"
		} else if err != nil {
			results["history"] = err.Error()
			failed = true
		} else {
			results["history"] = report
		}

		if report, err := svc.CheckArchive(ctx); errors.Is(err, integrity.ErrNoArchive) {
			results["archive"] = "skipped"
		} else if err != nil {
			results["archive"] = err.Error()
			failed = true
		} else {
			results["archive"] = report
		}

		if fixFlag {
			if plan, executed, err := svc.FixReleases(ctx); errors.Is(err, integrity.ErrNoArchive) {
				results["releases"] = "skipped"
			} else if err != nil {
				results["releases"] = err.Error()
				failed = true
			} else {
				results["releases"] = map[string]any{"summary": plan.Summary, "executed": executed}
			}
		} else if plan, err := svc.CheckReleases(ctx); errors.Is(err, integrity.ErrNoArchive) {
			results["releases"] = "skipped"
		} else if err != nil {
			results["releases"] = err.Error()
			failed = true
		} else {
			results["releases"] = plan
		}

		if jsonOutput {
			b, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
		} else {
			fmt.Printf("Install: %s\n", install)
			for _, name := range []string{"config", "history", "archive", "releases"} {
				rt.logger.Info("Integrity check", zap.String("check", name), zap.Any("result", results[name]))
			}
		}

		if failed {
			return errors.New("integrity checks failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the archive bucket and archive the installed release when missing")
	integrityCmd.Flags().Bool("json", false, "Print the results as JSON")
}
