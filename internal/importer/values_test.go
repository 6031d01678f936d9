package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "2024-05-20"},
		{in: "2024/05/20"},
		{in: "2024-05-20 00:00:00"},
		{in: "45432"},
		{in: "", wantErr: true},
		{in: "May 20", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in, time.UTC)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParseInt(t *testing.T) {
	got, err := parseInt("4.0")
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	_, err = parseInt("4.5")
	assert.Error(t, err)

	_, err = parseInt("")
	assert.ErrorIs(t, err, errEmpty)
}
