package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchUpdate(t *testing.T) {
	matches := Search(ArchPack, "update arch linux", 5)
	require.NotEmpty(t, matches)
	assert.Equal(t, "arch-update", matches[0].Entry.ID)
}

func TestSearchDisk(t *testing.T) {
	matches := Search(ArchPack, "disk space full", 5)
	require.NotEmpty(t, matches)
	assert.Contains(t, matches[0].Entry.ID, "disk")
}

func TestSearchFailedServices(t *testing.T) {
	matches := Search(ArchPack, "systemctl failed services", 5)
	require.NotEmpty(t, matches)
	assert.Equal(t, "arch-failed-services", matches[0].Entry.ID)
}

func TestSearchRespectsLimit(t *testing.T) {
	matches := Search(ArchPack, "pacman package", 2)
	assert.LessOrEqual(t, len(matches), 2)
}

func TestSearchNoMatchesReturnsEmpty(t *testing.T) {
	matches := Search(ArchPack, "zzzzz qqqqq unrelated gibberish", 5)
	assert.Empty(t, matches)
}

func TestSearchOrderingIsDeterministic(t *testing.T) {
	first := Search(ArchPack, "pacman package service", 10)
	second := Search(ArchPack, "pacman package service", 10)
	assert.Equal(t, first, second)
}

func TestTryBuiltinAnswer(t *testing.T) {
	entry, ok := TryAnswer(ArchPack, "update arch linux system", 20)
	require.True(t, ok)
	assert.Equal(t, "arch-update", entry.ID)
}

func TestTryBuiltinAnswerBelowThreshold(t *testing.T) {
	_, ok := TryAnswer(ArchPack, "hello there", 20)
	assert.False(t, ok)
}

func TestAllEntriesHaveRequiredFields(t *testing.T) {
	for _, e := range ArchPack {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Title)
		assert.NotEmpty(t, e.Body)
		assert.NotEmpty(t, e.Tags)
	}
}
