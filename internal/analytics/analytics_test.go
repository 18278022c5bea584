package analytics

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dalil/internal/domain"
)

func TestThousands(t *testing.T) {
	cases := map[int]string{0: "0", 456: "456", 2547: "2,547", 1234567: "1,234,567", -8921: "-8,921"}
	for in, want := range cases {
		assert.Equal(t, want, Thousands(in), "Thousands(%d)", in)
	}
}

func TestDashboardStats_AddsSavedCounts(t *testing.T) {
	stats := DashboardStats(3, 1)
	require.Len(t, stats, 4)
	assert.Equal(t, "2,550", stats[0].Value)
	assert.Equal(t, "1,235", stats[1].Value)
}

func TestBar(t *testing.T) {
	assert.Equal(t, 0, Bar(0, 100, 10))
	assert.Equal(t, 1, Bar(1, 2500, 10))
	assert.Equal(t, 9, Bar(2380, ConsultationsScale, 10))
	assert.Equal(t, 10, Bar(5000, 2500, 10))
}

func TestGrowth(t *testing.T) {
	assert.Equal(t, "+18%", Growth(18))
	assert.Equal(t, "-3%", Growth(-3))
}

func TestTrends_AddRequiresTitleAndCategory(t *testing.T) {
	tr := NewTrends(rand.New(rand.NewPCG(1, 2)))

	_, err := tr.Add(NewTrend{Category: "Fiscalité"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = tr.Add(NewTrend{Title: "TVA"})
	require.Error(t, err)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "category", de.Field)
}

func TestTrends_AddRanges(t *testing.T) {
	tr := NewTrends(rand.New(rand.NewPCG(7, 7)))
	for range 200 {
		got, err := tr.Add(NewTrend{Title: "Droit numérique", Category: "Droit Civil", Keywords: "données, , cyber"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Searches, 50)
		assert.LessOrEqual(t, got.Searches, 249)
		assert.GreaterOrEqual(t, got.Growth, 5)
		assert.LessOrEqual(t, got.Growth, 34)
		assert.Equal(t, []string{"données", "cyber"}, got.Keywords)
		assert.Equal(t, domain.PriorityMedium, got.Priority)
	}
}

func TestTrends_Enrich(t *testing.T) {
	tr := NewTrends(rand.New(rand.NewPCG(3, 4)))
	seed := SeedTrends()[0]
	orig := append([]string(nil), seed.Keywords...)

	got := tr.Enrich(seed)
	assert.Equal(t, append(orig, "nouveauté", "jurisprudence"), got.Keywords)
	assert.GreaterOrEqual(t, got.Searches, 245)
	assert.Less(t, got.Searches, 295)
	assert.Equal(t, orig, seed.Keywords, "input trend must not be modified")
}
