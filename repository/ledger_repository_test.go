package repository

import (
	"testing"

	"volleybank/domain/interfaces"

	"github.com/stretchr/testify/assert"
)

func TestLeaderboardOrderings_AllKeysHaveOrderClauses(t *testing.T) {
	for _, key := range interfaces.LeaderboardOrderings {
		clause, ok := orderings[key]
		assert.True(t, ok, "order key %q has no ORDER BY clause", key)
		assert.NotEmpty(t, clause)
	}
	assert.Len(t, orderings, len(interfaces.LeaderboardOrderings))
}
