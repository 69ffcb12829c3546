package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{source: "https://example.com/dict.json", want: true},
		{source: "http://example.com/dict.txt", want: true},
		{source: "dict.json", want: false},
		{source: "-", want: false},
		{source: "ftp://example.com/dict.txt", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, IsURL(tt.source))
		})
	}
}

func TestReader_Fetch(t *testing.T) {
	tests := []struct {
		name              string
		handler           func(calls int32, w http.ResponseWriter)
		retryAttempts     uint
		want              string
		wantErrorContains string
		wantCalls         int32
	}{
		{
			name: "text response",
			handler: func(_ int32, w http.ResponseWriter) {
				_, _ = w.Write([]byte("cat\t猫"))
			},
			want:      "cat\t猫",
			wantCalls: 1,
		},
		{
			name: "bom is dropped",
			handler: func(_ int32, w http.ResponseWriter) {
				_, _ = w.Write([]byte("\xEF\xBB\xBF[{\"src\": \"a\", \"dst\": \"b\"}]"))
			},
			want:      `[{"src": "a", "dst": "b"}]`,
			wantCalls: 1,
		},
		{
			name: "server error is retried",
			handler: func(calls int32, w http.ResponseWriter) {
				if calls == 1 {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				_, _ = w.Write([]byte("a\tb"))
			},
			retryAttempts: 2,
			want:          "a\tb",
			wantCalls:     2,
		},
		{
			name: "not found is not retried",
			handler: func(_ int32, w http.ResponseWriter) {
				w.WriteHeader(http.StatusNotFound)
			},
			retryAttempts:     3,
			wantErrorContains: "response error 404",
			wantCalls:         1,
		},
		{
			name: "retries are exhausted",
			handler: func(_ int32, w http.ResponseWriter) {
				w.WriteHeader(http.StatusBadGateway)
			},
			retryAttempts:     1,
			wantErrorContains: "response error 502",
			wantCalls:         2,
		},
		{
			name: "binary content is rejected",
			handler: func(_ int32, w http.ResponseWriter) {
				_, _ = w.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
			},
			wantErrorContains: "remote content is not text",
			wantCalls:         1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.handler(calls.Add(1), w)
			}))
			defer server.Close()

			reader := NewReader(Config{
				RetryAttempts: tt.retryAttempts,
				RetryDelay:    time.Millisecond,
			})
			defer func() {
				_ = reader.Close()
			}()

			got, err := reader.Fetch(context.Background(), server.URL+"/dict")
			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantErrorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReader_Fetch_UsesCache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("cat\t猫"))
	}))
	defer server.Close()

	reader := NewReader(Config{CacheDirectory: t.TempDir()})
	defer func() {
		_ = reader.Close()
	}()

	for range 3 {
		got, err := reader.Fetch(context.Background(), server.URL+"/dict.txt")
		require.NoError(t, err)
		assert.Equal(t, "cat\t猫", got)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestReader_Fetch_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("cat\t猫"))
	}))
	defer server.Close()

	reader := NewReader(Config{RetryAttempts: 3, RetryDelay: time.Millisecond})
	defer func() {
		_ = reader.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reader.Fetch(ctx, server.URL)
	assert.Error(t, err)
}
