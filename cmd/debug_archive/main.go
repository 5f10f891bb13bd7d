package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"beammp-manager/core/config"
	"beammp-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// Lists every object of the release archive bucket, flagging keys that do
// not follow the <server>/<tag>/<file> layout.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
	if err != nil {
		log.Fatal(err)
	}
	if !exists {
		log.Fatalf("bucket %s does not exist", cfg.Storage.Bucket)
	}

	fmt.Printf("=== Objects in %s ===\n", cfg.Storage.Bucket)
	var total, stray int
	for obj := range client.ListObjects(ctx, cfg.Storage.Bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			log.Fatal(obj.Err)
		}
		total++
		mark := ""
		if len(strings.Split(obj.Key, "/")) != 3 {
			mark = "  (unexpected key)"
			stray++
		}
		fmt.Printf("%-60s %12d  %s%s\n", obj.Key, obj.Size, obj.LastModified.Format("2006-01-02 15:04:05"), mark)
	}
	fmt.Printf("\n%d objects, %d with unexpected keys\n", total, stray)
}
