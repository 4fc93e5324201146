package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Лимит без стабильного порядка возвращал бы произвольное подмножество строк,
// и два одинаковых запроса могли бы увидеть разных кандидатов
func TestCandidateScanQueries_StableTrimOrder(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"box scan", findCandidatesInBoxQuery},
		{"city-only scan", findCityOnlyCandidatesQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Contains(t, tc.query, "ORDER BY l.user_id")
			require.Contains(t, tc.query, "LIMIT")
			assert.Greater(t, strings.Index(tc.query, "LIMIT"), strings.Index(tc.query, "ORDER BY"))
		})
	}
}
