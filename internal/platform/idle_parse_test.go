package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdleMillis(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    float64
		wantErr bool
	}{
		{"Plain", "1500\n", 1.5, false},
		{"Zero", "0", 0, false},
		{"Negative", "-20", 0, false},
		{"Garbage", "couldn't open display", 0, true},
		{"Empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIdleMillis([]byte(tt.output))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseHIDIdleTime(t *testing.T) {
	output := `+-o Root  <class IORegistryEntry, id 0x100000100, retain 26>
  +-o IOHIDSystem  <class IOHIDSystem, id 0x100000367, registered, matched, active, busy 0 (0 ms), retain 22>
    | {
    |   "HIDIdleTimeDelta" = 0
    |   "HIDIdleTime" = 2500000000
    |   "HIDParameters" = {}
    | }
`
	got, err := parseHIDIdleTime([]byte(output))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got, 1e-9)
}

func TestParseHIDIdleTimeMissing(t *testing.T) {
	_, err := parseHIDIdleTime([]byte(`+-o Root <class IORegistryEntry>`))
	assert.Error(t, err)

	_, err = parseHIDIdleTime([]byte(`"HIDIdleTime" = lots`))
	assert.Error(t, err)
}
