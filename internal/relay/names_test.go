package relay

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsername(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for range 50 {
		name := GenerateUsername(rng)
		words := strings.Fields(name)
		require.Len(t, words, 2, name)
		for _, w := range words {
			assert.True(t, unicode.IsUpper([]rune(w)[0]), name)
		}
		assert.LessOrEqual(t, len(name), MaxUsernameLen)
	}
}

func TestGenerateUsernameDeterministic(t *testing.T) {
	a := GenerateUsername(rand.New(rand.NewPCG(9, 9)))
	b := GenerateUsername(rand.New(rand.NewPCG(9, 9)))
	assert.Equal(t, a, b)
}
