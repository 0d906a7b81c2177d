package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeRange_DateOnly(t *testing.T) {
	tests := []struct {
		name string
		tr   TimeRange
		want bool
	}{
		{"date-only end", TimeRange{Start: "2024-03-14", End: "2024-03-14"}, true},
		{"full timestamp end", TimeRange{Start: "2024-03-14", End: "2024-03-15T10:00:00Z"}, false},
		{"full timestamps both", TimeRange{Start: "2024-03-14T00:00:00Z", End: "2024-03-15T10:00:00Z"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tr.DateOnly())
		})
	}
}

func TestMergeFilters(t *testing.T) {
	prior := Filters{
		EventType: "failed_login",
		VPN:       true,
		Username:  "alice",
		IPs:       []string{"10.0.0.1"},
	}

	t.Run("empty next keeps prior", func(t *testing.T) {
		assert.Equal(t, prior, MergeFilters(prior, Filters{}))
	})

	t.Run("set fields win", func(t *testing.T) {
		merged := MergeFilters(prior, Filters{
			EventType: "malware",
			Username:  "bob",
		})
		assert.Equal(t, "malware", merged.EventType)
		assert.Equal(t, "bob", merged.Username)
		// Unset fields persist.
		assert.True(t, merged.VPN)
		assert.Equal(t, []string{"10.0.0.1"}, merged.IPs)
	})

	t.Run("new ip list replaces old", func(t *testing.T) {
		merged := MergeFilters(prior, Filters{IPs: []string{"10.0.0.9"}})
		assert.Equal(t, []string{"10.0.0.9"}, merged.IPs)
	})

	t.Run("booleans cannot be unset by a follow-up", func(t *testing.T) {
		merged := MergeFilters(Filters{MFA: true, Suspicious: true}, Filters{})
		assert.True(t, merged.MFA)
		assert.True(t, merged.Suspicious)
	})
}
