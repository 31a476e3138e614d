package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{name: "default", query: "", want: 20},
		{name: "explicit", query: "limit=50", want: 50},
		{name: "clamped to max", query: "limit=500", want: 100},
		{name: "zero rejected", query: "limit=0", wantErr: true},
		{name: "negative rejected", query: "limit=-1", wantErr: true},
		{name: "garbage rejected", query: "limit=abc", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/entities/duplicates?"+tc.query, nil)
			got, err := ParseLimit(r)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseOffset(t *testing.T) {
	r := httptest.NewRequest("GET", "/entities/duplicates", nil)
	offset, err := ParseOffset(r)
	require.NoError(t, err)
	assert.Zero(t, offset)

	r = httptest.NewRequest("GET", "/entities/duplicates?offset=40", nil)
	offset, err = ParseOffset(r)
	require.NoError(t, err)
	assert.Equal(t, 40, offset)

	r = httptest.NewRequest("GET", "/entities/duplicates?offset=-1", nil)
	_, err = ParseOffset(r)
	require.Error(t, err)
}
