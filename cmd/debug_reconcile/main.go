package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"beammp-manager/core/config"
	"beammp-manager/core/serverconfig"
)

// Dry-runs reconciliation of a ServerConfig.toml against the configured
// server settings and prints the result without writing it.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	path := cfg.Instance.Layout().ConfigPath()
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	store := serverconfig.NewStore(path)
	if !store.Exists() {
		log.Fatalf("%s does not exist", path)
	}
	doc, err := store.Load()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== Current settings ===")
	if settings, err := serverconfig.Inspect(doc); err != nil {
		fmt.Printf("Document does not parse as TOML: %v\n", err)
	} else {
		printJSON(settings)
	}

	missing, err := serverconfig.MissingFields(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nMissing fields: %v\n", missing)

	out, report, err := serverconfig.Reconcile(doc, cfg.Instance.Authoritative())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\n=== Reconcile report ===")
	printJSON(report)

	if report.Changed {
		fmt.Println("\n=== Reconciled document ===")
		fmt.Print(out.String())
	}
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(b))
}
