package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinixspb/vnxChooseApple-bot/pkg/catalog"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository()

	session := catalog.NewSession("42", "iPhone", catalog.DefaultSchema)
	session.Start()
	repo.Save(session)

	got, found := repo.Get("42")
	require.True(t, found)
	assert.Same(t, session, got)

	_, found = repo.Get("other")
	assert.False(t, found)

	repo.Delete("42")
	_, found = repo.Get("42")
	assert.False(t, found)

	// Deleting again is harmless.
	repo.Delete("42")
}

func TestSessionRepositoryOverwrite(t *testing.T) {
	repo := NewSessionRepository()

	first := catalog.NewSession("42", "iPhone", catalog.DefaultSchema)
	second := catalog.NewSession("42", "MacBook", catalog.DefaultSchema)
	repo.Save(first)
	repo.Save(second)

	got, found := repo.Get("42")
	require.True(t, found)
	assert.Same(t, second, got)
}
