package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorerFor(t *testing.T) {
	for _, a := range Algorithms() {
		t.Run(string(a), func(t *testing.T) {
			assert.True(t, a.Valid())

			s, err := ScorerFor(a)
			if a.IsExact() {
				require.Error(t, err)
				assert.Nil(t, s)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, s)
			assert.Equal(t, 100, s("journal of things", "journal of things"))
		})
	}
}

func TestScorerFor_Unknown(t *testing.T) {
	_, err := ScorerFor("jaro_winkler")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown match algorithm")
	assert.Contains(t, err.Error(), "token_set_ratio")

	assert.False(t, Algorithm("jaro_winkler").Valid())
}

func TestAlgorithmNames(t *testing.T) {
	assert.Equal(t, []string{
		"exact", "ratio", "partial_ratio", "token_sort_ratio", "token_set_ratio", "levenshtein",
	}, AlgorithmNames())
}
