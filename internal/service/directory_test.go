package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/shootout-odds/internal/models"
)

type fakeDirectory struct {
	participants []models.Participant
	err          error
}

func (f *fakeDirectory) Participants(_ context.Context) ([]models.Participant, error) {
	return f.participants, f.err
}

func TestStaticDirectoryReturnsCopy(t *testing.T) {
	field := []models.Participant{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	dir := NewStaticDirectory(field)

	got, err := dir.Participants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, field, got)

	got[0].Name = "changed"
	again, _ := dir.Participants(context.Background())
	assert.Equal(t, "A", again[0].Name)
}

func TestNewDirectoryPrefersConfiguredField(t *testing.T) {
	remote := &fakeDirectory{participants: []models.Participant{{ID: 9, Name: "Remote"}}}
	configured := []models.Participant{{ID: 1, Name: "Configured"}}

	got, err := NewDirectory(configured, remote, newTestValidator()).Participants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, configured, got)

	got, err = NewDirectory(nil, remote, newTestValidator()).Participants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, remote.participants, got)
}

func TestValidatingDirectoryFiltersEntries(t *testing.T) {
	remote := &fakeDirectory{participants: []models.Participant{
		{ID: 1, Name: "A"},
		{ID: 0, Name: "No ID"},
		{ID: 2, Name: ""},
		{ID: 1, Name: "A again"},
		{ID: 3, Name: "C"},
	}}

	got, err := NewValidatingDirectory(remote, newTestValidator()).Participants(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Participant{{ID: 1, Name: "A"}, {ID: 3, Name: "C"}}, got)
}

func TestValidatingDirectoryUpstreamError(t *testing.T) {
	upstreamErr := errors.New("unavailable")
	_, err := NewValidatingDirectory(&fakeDirectory{err: upstreamErr}, newTestValidator()).Participants(context.Background())
	assert.True(t, errors.Is(err, upstreamErr))
}
