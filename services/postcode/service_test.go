package postcode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreaLabel(t *testing.T) {
	assert.Equal(t, "Westminster, London", AreaLabel("Westminster", "London", "England"))
	assert.Equal(t, "Glasgow City", AreaLabel("Glasgow City", "", "Scotland"))
	assert.Equal(t, "Wales", AreaLabel("", "", "Wales"))
}

func TestLookup(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/postcodes/SW1A%201AA", r.URL.EscapedPath())
		w.Write([]byte(`{"status":200,"result":{"admin_district":"Westminster","region":"London","country":"England"}}`))
	}))
	defer srv.Close()

	svc := NewPostcodeService(srv.URL, nil, nil)
	resp, err := svc.Lookup(context.Background(), " sw1a 1aa ")
	require.NoError(t, err)
	assert.Equal(t, "SW1A 1AA", resp.Postcode)
	assert.Equal(t, "Westminster, London", resp.AreaLabel)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestLookupRejectsBadShape(t *testing.T) {
	svc := NewPostcodeService("http://127.0.0.1:0", nil, nil)
	_, err := svc.Lookup(context.Background(), "12345")
	assert.ErrorIs(t, err, ErrInvalidPostcode)
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"upstream error", http.StatusInternalServerError, `oops`, ErrLookupFailed},
		{"not found status", http.StatusOK, `{"status":404,"error":"Invalid postcode"}`, ErrNotFound},
		{"missing result", http.StatusOK, `{"status":200}`, ErrNotFound},
		{"bad json", http.StatusOK, `{`, ErrLookupFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewPostcodeService(srv.URL, nil, nil).Lookup(context.Background(), "M1 1AE")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
