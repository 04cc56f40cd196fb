package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

func sampleLocations() []model.Location {
	return []model.Location{
		model.InboxLocation(),
		{Name: "Groceries", FileID: "doc1", NodeID: "n1", ChildrenCount: 14},
		{Name: "Reading list", FileID: "doc2", NodeID: "n9", ChildrenCount: 31},
	}
}

func TestLocationRepo_ReplaceAllAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocationRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, sampleLocations()))

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.True(t, got[0].IsInbox)
	assert.Equal(t, model.InboxLocationName, got[0].Name)
	assert.Equal(t, "Groceries", got[1].Name)
	assert.Equal(t, "doc1", got[1].FileID)
	assert.Equal(t, "n1", got[1].NodeID)
	assert.Equal(t, 14, got[1].ChildrenCount)
	assert.Equal(t, 2, got[2].Position)
	assert.False(t, got[2].UpdatedAt.IsZero())
}

func TestLocationRepo_ReplaceAllDropsOldRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocationRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, sampleLocations()))
	require.NoError(t, repo.ReplaceAll(ctx, []model.Location{model.InboxLocation()}))

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsInbox)
}

func TestLocationRepo_ListEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocationRepo(db)

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLocationRepo_GetByNameCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocationRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, sampleLocations()))

	loc, err := repo.GetByName(ctx, "reading LIST")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, "doc2", loc.FileID)
	assert.Equal(t, "n9", loc.NodeID)
}

func TestLocationRepo_GetByNameMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLocationRepo(db)

	loc, err := repo.GetByName(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, loc)
}
