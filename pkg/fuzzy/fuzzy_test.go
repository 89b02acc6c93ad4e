package fuzzy_test

import (
	"testing"

	"github.com/gnames/gnpin/pkg/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		msg, a, b string
		score     int
	}{
		{"identical", "Rameron Pigeon", "Rameron Pigeon", 100},
		{"substring", "Pigeon", "Rameron Pigeon", 100},
		{"substring reversed", "Rameron Pigeon", "Pigeon", 100},
		{"similar", "Maroon Pigeon", "Rameron Pigeon", 85},
		{"different", "Maroon Pigeon", "Short-toed Coucal", 31},
		{"empty query", "", "Rameron Pigeon", 0},
		{"both empty", "", "", 0},
	}

	for _, v := range tests {
		assert.Equal(t, v.score, fuzzy.PartialRatio(v.a, v.b), v.msg)
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 100, fuzzy.Ratio("ostrich", "ostrich"))
	assert.Equal(t, 0, fuzzy.Ratio("", ""))
	assert.Equal(t, 0, fuzzy.Ratio("abc", "xyz"))
}

func TestSearchRecords(t *testing.T) {
	records := []map[string]string{
		{"common_name": "Short-toed Coucal"},
		{"common_name": "Rameron Pigeon"},
	}

	t.Run("threshold 80", func(t *testing.T) {
		res := fuzzy.SearchRecords(records, "Maroon Pigeon", "common_name", 80)
		require.Len(t, res, 1)
		assert.Equal(t, "Rameron Pigeon", res[0].Row["common_name"])
		assert.GreaterOrEqual(t, res[0].Score, 80)
	})

	t.Run("threshold 95", func(t *testing.T) {
		res := fuzzy.SearchRecords(records, "Maroon Pigeon", "common_name", 95)
		assert.Empty(t, res)
	})

	t.Run("missing key", func(t *testing.T) {
		res := fuzzy.SearchRecords(records, "Maroon Pigeon", "name", 0)
		assert.Empty(t, res)
	})
}

func TestSearchKeepsOrder(t *testing.T) {
	rows := []string{"Wood Pigeon", "Rameron Pigeon", "Pigeon Guillemot"}
	attr := func(s string) (string, bool) { return s, true }
	res := fuzzy.Search(rows, "Pigeon", attr, 80)
	require.Len(t, res, 3)
	for i, v := range res {
		assert.Equal(t, rows[i], v.Row)
		assert.Equal(t, 100, v.Score)
	}
}
