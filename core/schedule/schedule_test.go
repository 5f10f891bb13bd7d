package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{"@every 1h", false},
		{"@daily", false},
		{"0 */5 * * * *", false},
		{"*/5 * * * *", false},
		{"", true},
		{"   ", true},
		{"not a cron", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			err := Validate(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduler_AddRejectsInvalid(t *testing.T) {
	s := New(zap.NewNop())
	err := s.Add("update-check", "whenever", func(context.Context) error { return nil })
	assert.ErrorContains(t, err, "job update-check")
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_RunsJob(t *testing.T) {
	s := New(zap.NewNop())
	var runs atomic.Int32
	done := make(chan struct{}, 1)

	require.NoError(t, s.Add("tick", "@every 1s", func(ctx context.Context) error {
		if runs.Add(1) == 1 {
			done <- struct{}{}
		}
		return errors.New("boom")
	}))
	assert.Equal(t, 1, s.Len())

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestScheduler_StopCancelsContext(t *testing.T) {
	s := New(zap.NewNop())
	s.Start()
	s.Stop()
	assert.Error(t, s.ctx.Err())
}
