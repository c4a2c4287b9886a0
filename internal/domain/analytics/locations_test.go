package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-crm/internal/domain/analytics"
)

func TestExtractLocality(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Flat 4, Andheri West, Mumbai 400053", "Andheri West", true},
		{"12 MG Road, Indiranagar, Bangalore, Karnataka", "Indiranagar", true},
		{"Mumbai, Maharashtra", "Mumbai", true},
		{"koramangala,  BENGALURU", "Koramangala", true},
		{"Sector 18, Noida", "Sector 18", true},
		{"Sector 62, Noida 201309", "Sector 62", true},
		{"Tadong, Gangtok, Sikkim 737102", "Tadong", true},
		{"MG Marg, 737101, Gangtok", "Mg Marg", true},
		{"Development Area, Sikkim", "Development Area", true},
		{"Mumbai", "", false},
		{"Calle 10 # 5-20, Bogotá", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := analytics.ExtractLocality(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestTopLocations_OrdenYLimite(t *testing.T) {
	texts := []string{
		"Andheri, Mumbai",
		"andheri, mumbai",
		"Bandra, Mumbai",
		"Indiranagar, Bangalore",
		"sin ubicación",
	}
	top := analytics.TopLocations(texts, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Andheri", top[0].Name)
	assert.Equal(t, 2, top[0].Count)
	assert.Equal(t, 50, top[0].Percentage)
	assert.Equal(t, "Bandra", top[1].Name)
}

func TestFallbackLocations(t *testing.T) {
	assert.Empty(t, analytics.FallbackLocations(0))

	locs := analytics.FallbackLocations(10)
	require.Len(t, locs, len(analytics.FallbackDistribution))
	assert.Equal(t, "Mumbai", locs[0].Name)
	assert.Equal(t, 3, locs[0].Count)
	assert.Equal(t, 30, locs[0].Percentage)
}
