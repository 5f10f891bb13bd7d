package storage_test

import (
	"testing"

	"beammp-manager/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
		timeout  int
	}{
		{"BareEndpoint", "localhost:9000", false, 30},
		{"HTTPScheme", "http://localhost:9000", false, 0},
		{"HTTPSScheme", "https://s3.amazonaws.com", true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(storage.Config{
				Enabled:        true,
				Endpoint:       tt.endpoint,
				AccessKey:      "testkey",
				SecretKey:      "testsecret",
				UseSSL:         tt.useSSL,
				Bucket:         "beammp-releases",
				Region:         "us-east-1",
				TimeoutSeconds: tt.timeout,
			})
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}
