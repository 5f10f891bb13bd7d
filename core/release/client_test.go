package release_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"beammp-manager/core/errs"
	"beammp-manager/core/release"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(indexURL string) *release.Client {
	return release.NewClient(release.Config{
		IndexURL:       indexURL,
		DownloadURL:    "https://example.invalid/latest/BeamMP-Server.exe",
		AssetName:      "BeamMP-Server.exe",
		UserAgent:      "WindowsGSM",
		TimeoutSeconds: 5,
	})
}

func TestClient_ResolveLatest(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"tag_name":"v3.4.1","name":"BeamMP-Server v3.4.1"}`)
	}))
	defer srv.Close()

	rel, err := newClient(srv.URL).ResolveLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v3.4.1", rel.Tag)
	assert.Equal(t, "https://example.invalid/latest/BeamMP-Server.exe", rel.DownloadURL)
	assert.Equal(t, "WindowsGSM", gotAgent)
}

func TestClient_ResolveLatest_PrefersListedAsset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name":"v3.5.0","assets":[
			{"name":"BeamMP-Server.debian.12.x86_64","browser_download_url":"https://cdn.invalid/linux"},
			{"name":"BeamMP-Server.exe","browser_download_url":"https://cdn.invalid/v3.5.0/BeamMP-Server.exe"}]}`)
	}))
	defer srv.Close()

	rel, err := newClient(srv.URL).ResolveLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.invalid/v3.5.0/BeamMP-Server.exe", rel.DownloadURL)
}

func TestClient_ResolveLatest_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   errs.Kind
	}{
		{"EmptyBody", http.StatusOK, "", errs.KindParse},
		{"WhitespaceBody", http.StatusOK, "  \n", errs.KindParse},
		{"MalformedJSON", http.StatusOK, `{"tag_name":`, errs.KindParse},
		{"MissingTag", http.StatusOK, `{"name":"release"}`, errs.KindParse},
		{"EmptyTag", http.StatusOK, `{"tag_name":"  "}`, errs.KindParse},
		{"NullTag", http.StatusOK, `{"tag_name":null}`, errs.KindParse},
		{"NotAnObject", http.StatusOK, `[1,2,3]`, errs.KindParse},
		{"ServerError", http.StatusInternalServerError, `oops`, errs.KindNetwork},
		{"RateLimited", http.StatusForbidden, `{"message":"API rate limit exceeded"}`, errs.KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := newClient(srv.URL).ResolveLatest(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.kind, errs.KindOf(err))
		})
	}
}

func TestClient_ResolveLatest_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(url).ResolveLatest(context.Background())
	assert.True(t, errs.Is(err, errs.KindNetwork))
}

func TestClient_ResolveLatest_Cancelled(t *testing.T) {
	unblock := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-unblock:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(unblock)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newClient(srv.URL).ResolveLatest(ctx)
	assert.True(t, errs.Is(err, errs.KindNetwork))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "new binary")
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "BeamMP-Server.exe")
	require.NoError(t, os.WriteFile(dest, []byte("old binary"), 0o755))

	require.NoError(t, newClient(srv.URL).Download(context.Background(), srv.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new binary", string(data))
}

func TestClient_Download_TruncatedKeepsPrevious(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("hijacking not supported")
			return
		}
		conn, buf, err := hj.Hijack()
		if err != nil {
			t.Error(err)
			return
		}
		defer conn.Close()
		fmt.Fprint(buf, "HTTP/1.1 200 OK\r\nContent-Length: 1000\r\nContent-Type: application/octet-stream\r\n\r\npartial")
		buf.Flush()
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "BeamMP-Server.exe")
	require.NoError(t, os.WriteFile(dest, []byte("complete old binary"), 0o755))

	err := newClient(srv.URL).Download(context.Background(), srv.URL, dest)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.KindNetwork))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "complete old binary", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "partial download must be cleaned up")
}

func TestClient_Download_TruncatedWithoutPrevious(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		if err != nil {
			t.Error(err)
			return
		}
		defer conn.Close()
		fmt.Fprint(buf, "HTTP/1.1 200 OK\r\nContent-Length: 64\r\n\r\nhalf")
		buf.Flush()
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "BeamMP-Server.exe")
	err := newClient(srv.URL).Download(context.Background(), srv.URL, dest)
	require.Error(t, err)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestClient_Download_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "BeamMP-Server.exe")
	err := newClient(srv.URL).Download(context.Background(), srv.URL, dest)
	assert.True(t, errs.Is(err, errs.KindNetwork))
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestClient_Download_UnwritableDestination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "binary")
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "missing", "BeamMP-Server.exe")
	err := newClient(srv.URL).Download(context.Background(), srv.URL, dest)
	assert.Equal(t, errs.KindIO, errs.KindOf(err))
}

func TestClient_ResolveLatest_SharedCallSurvivesCancelledCaller(t *testing.T) {
	received := make(chan struct{}, 2)
	respond := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
		select {
		case <-respond:
		case <-r.Context().Done():
			return
		}
		fmt.Fprint(w, `{"tag_name":"v3.4.2"}`)
	}))
	defer srv.Close()

	client := newClient(srv.URL)

	type result struct {
		rel release.Release
		err error
	}
	first := make(chan result, 1)
	second := make(chan result, 1)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		rel, err := client.ResolveLatest(ctx)
		first <- result{rel, err}
	}()
	<-received

	go func() {
		rel, err := client.ResolveLatest(context.Background())
		second <- result{rel, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	got := <-first
	assert.ErrorIs(t, got.err, context.Canceled)
	assert.True(t, errs.Is(got.err, errs.KindNetwork))

	close(respond)
	got = <-second
	require.NoError(t, got.err)
	assert.Equal(t, "v3.4.2", got.rel.Tag)
}
