package dbx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime_Scan(t *testing.T) {
	want := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name string
		src  any
		want time.Time
	}{
		{"time value", want, want},
		{"sqlite text", "2024-05-06 07:08:09", want},
		{"rfc3339 bytes", []byte("2024-05-06T07:08:09Z"), want},
		{"null", nil, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got time.Time
			require.NoError(t, Time(&got).Scan(tt.src))
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestTime_Scan_Rejects(t *testing.T) {
	var got time.Time
	assert.Error(t, Time(&got).Scan("yesterday"))
	assert.Error(t, Time(&got).Scan(42))
}

func TestNullString(t *testing.T) {
	assert.False(t, NullString("").Valid)

	ns := NullString("+1-555")
	assert.True(t, ns.Valid)
	assert.Equal(t, "+1-555", ns.String)

	assert.Nil(t, StringPtr(NullString("")))
	require.NotNil(t, StringPtr(ns))
	assert.Equal(t, "+1-555", *StringPtr(ns))
}
