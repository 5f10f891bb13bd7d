package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"beammp-manager/core/errs"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := errs.New(errs.KindNetwork, "resolve latest release", context.DeadlineExceeded)
	assert.Equal(t, "resolve latest release: context deadline exceeded", err.Error())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	bare := errs.New(errs.KindConfigMissing, "load config", nil)
	assert.Equal(t, "load config: config_missing", bare.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{"Direct", errs.New(errs.KindIO, "write", errors.New("disk full")), errs.KindIO},
		{"Wrapped", fmt.Errorf("context: %w", errs.New(errs.KindParse, "decode", nil)), errs.KindParse},
		{"Plain", errors.New("boom"), ""},
		{"Nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.KindOf(tt.err))
		})
	}
}

func TestIs_NestedKinds(t *testing.T) {
	cause := errs.Newf(errs.KindNetwork, "download", "status %d", 502)
	err := errs.New(errs.KindInstall, "install", fmt.Errorf("download step: %w", cause))

	assert.True(t, errs.Is(err, errs.KindInstall))
	assert.True(t, errs.Is(err, errs.KindNetwork))
	assert.False(t, errs.Is(err, errs.KindIO))
	assert.False(t, errs.Is(nil, errs.KindIO))
}
