package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"beammp-manager/core/errs"
	"beammp-manager/core/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ArchivedRelease is one executable kept in the archive.
type ArchivedRelease struct {
	Tag          string    `json:"tag"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archive keeps a copy of every installed executable, keyed by server and
// release tag: <serverID>/<tag>/<file>.
type Archive struct {
	client Client
	bucket string
	logger *zap.Logger
}

// NewArchive creates an archive backed by client.
func NewArchive(client Client, bucket string, logger *zap.Logger) *Archive {
	return &Archive{client: client, bucket: bucket, logger: logger}
}

func objectKey(serverID, tag, file string) string {
	return path.Join(serverID, tag, file)
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	a.logger.Info("Created archive bucket", zap.String("bucket", a.bucket))
	return nil
}

// Store uploads the file at localPath as release tag of serverID.
func (a *Archive) Store(ctx context.Context, serverID, tag, localPath string) error {
	if err := a.ensureBucket(ctx); err != nil {
		return err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return errs.New(errs.KindIO, "archive release", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errs.New(errs.KindIO, "archive release", err)
	}

	key := objectKey(serverID, tag, path.Base(localPath))
	_, err = a.client.PutObject(ctx, a.bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType:  "application/octet-stream",
		UserMetadata: map[string]string{"tag": tag},
	})
	if err != nil {
		return errs.New(errs.KindNetwork, "archive release", err)
	}

	a.logger.Info("Archived release", zap.String("key", key), zap.Int64("size", info.Size()))
	return nil
}

// List returns the archived releases of serverID, newest first.
func (a *Archive) List(ctx context.Context, serverID string) ([]ArchivedRelease, error) {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, nil
	}

	prefix := serverID + "/"
	var releases []ArchivedRelease
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, errs.New(errs.KindNetwork, "list archive", obj.Err)
		}
		rest := strings.TrimPrefix(obj.Key, prefix)
		tag, _, ok := strings.Cut(rest, "/")
		if !ok || tag == "" {
			continue
		}
		releases = append(releases, ArchivedRelease{
			Tag:          tag,
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[i].LastModified.After(releases[j].LastModified)
	})
	return releases, nil
}

// Fetch downloads the archived executable of tag into dest atomically.
func (a *Archive) Fetch(ctx context.Context, serverID, tag, dest string) error {
	key := objectKey(serverID, tag, path.Base(dest))
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return errs.New(errs.KindNetwork, "fetch archived release", err)
	}
	defer obj.Close()

	err = utils.WriteAtomic(dest, 0o755, func(w io.Writer) error {
		if _, err := io.Copy(w, obj); err != nil {
			return errs.New(errs.KindNetwork, "fetch archived release", err)
		}
		return nil
	})
	if err != nil {
		if errs.KindOf(err) != "" {
			return err
		}
		return errs.New(errs.KindIO, "fetch archived release", err)
	}

	a.logger.Info("Restored archived release", zap.String("key", key), zap.String("dest", dest))
	return nil
}
