package checks

import (
	"context"
	"testing"

	"beammp-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestCheckArchive(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "archive").Return(true, nil)
	client.On("ListObjects", mock.Anything, "archive", minio.ListObjectsOptions{Prefix: "1/", Recursive: true}).
		Return(objects(minio.ObjectInfo{Key: "1/v3.4.0/BeamMP-Server.exe"}, minio.ObjectInfo{Key: "1/v3.4.1/BeamMP-Server.exe"}))

	report, err := CheckArchive(context.Background(), client, "archive", "1")
	require.NoError(t, err)
	assert.True(t, report.Exists)
	assert.Equal(t, 2, report.Objects)
}

func TestCheckArchive_BucketMissing(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "archive").Return(false, nil)

	report, err := CheckArchive(context.Background(), client, "archive", "1")
	require.NoError(t, err)
	assert.False(t, report.Exists)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckArchive_Errors(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "archive").Return(false, assert.AnError)
	_, err := CheckArchive(context.Background(), client, "archive", "1")
	assert.ErrorContains(t, err, "failed to check bucket existence")

	client = new(mocks.Client)
	client.On("BucketExists", mock.Anything, "archive").Return(true, nil)
	client.On("ListObjects", mock.Anything, "archive", mock.Anything).Return(objects(minio.ObjectInfo{Err: assert.AnError}))
	_, err = CheckArchive(context.Background(), client, "archive", "1")
	assert.ErrorContains(t, err, "failed to list archive")
}

func TestFixArchive(t *testing.T) {
	client := new(mocks.Client)
	client.On("MakeBucket", mock.Anything, "archive", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil).Once()
	assert.NoError(t, FixArchive(context.Background(), client, "archive", "eu-west-1", zap.NewNop()))

	client = new(mocks.Client)
	client.On("MakeBucket", mock.Anything, "archive", mock.Anything).Return(assert.AnError)
	assert.Error(t, FixArchive(context.Background(), client, "archive", "", zap.NewNop()))
}
