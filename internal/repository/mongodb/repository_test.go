package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// newIntegrationRepository connects to MONGODB_TEST_URI or skips the test.
func newIntegrationRepository(t *testing.T) *MongoDBRepository {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slot := fmt.Sprintf("test-%d", time.Now().UnixNano())
	repo, err := NewMongoDBRepository(ctx, uri, "stockroom_test", slot)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = repo.collection().DeleteMany(ctx, map[string]string{"_id": slot})
		_ = repo.Close(ctx)
	})
	return repo
}

func TestNewMongoDBRepository_RequiresSlot(t *testing.T) {
	_, err := NewMongoDBRepository(context.Background(), "mongodb://localhost:27017", "db", "")
	assert.Error(t, err)
}

func TestMongoDBRepository_RoundTrip(t *testing.T) {
	repo := newIntegrationRepository(t)
	ctx := context.Background()

	empty, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	added := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	want := []models.StockItem{
		{ID: "a", Name: "Flour", Category: "Baking", Quantity: 5, Unit: "kg", DateAdded: added},
	}
	require.NoError(t, repo.Write(ctx, want))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, want[0].Quantity, got[0].Quantity)
	assert.True(t, want[0].DateAdded.Equal(got[0].DateAdded))

	require.NoError(t, repo.Write(ctx, nil))
	got, err = repo.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
