package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOAuthStateRepository(t *testing.T) {
	repo := NewOAuthStateRepository()

	t.Run("saved state can be consumed once", func(t *testing.T) {
		repo.Save("state-1")

		assert.True(t, repo.Consume("state-1"))
		assert.False(t, repo.Consume("state-1"), "replayed state must be rejected")
	})

	t.Run("unknown state is rejected", func(t *testing.T) {
		assert.False(t, repo.Consume("never-issued"))
	})
}
