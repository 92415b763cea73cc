package lightnovel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeriesURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "https://www.lightnovelworld.co/novel/shadow-slave-1365", want: "shadow-slave-1365"},
		{raw: "https://www.lightnovelworld.co/novel/shadow-slave-1365/", want: "shadow-slave-1365"},
		{raw: "https://www.lightnovelworld.co/novel/shadow-slave-1365/chapter-42", want: "shadow-slave-1365"},
		{raw: "  http://host/novel/demo_1  ", want: "demo_1"},
		{raw: "https://host/novel/", wantErr: true},
		{raw: "https://host/books/demo-1", wantErr: true},
		{raw: "https://host/novel/demo-1/reviews", wantErr: true},
		{raw: "ftp://host/novel/demo-1", wantErr: true},
		{raw: "not a url", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSeriesURL(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrNotSeriesURL, tt.raw)
			continue
		}

		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestCheckReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/nohead":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	s := NewScraper(srv.Client(), srv.URL, nil)
	ctx := context.Background()

	assert.NoError(t, s.CheckReachable(ctx, srv.URL+"/ok"))
	assert.NoError(t, s.CheckReachable(ctx, srv.URL+"/nohead"))

	err := s.CheckReachable(ctx, srv.URL+"/missing")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}
