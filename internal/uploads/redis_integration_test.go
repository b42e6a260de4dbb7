//go:build integration

package uploads

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

func TestRedisTracker_Lifecycle(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	client, err := ConnectRedis(ctx, redisURL)
	require.NoError(t, err)
	defer client.Close()

	tr := NewRedisTracker(client, time.Minute)
	id := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, key(id)) })

	require.NoError(t, tr.Start(ctx, types.UploadProgress{ID: id, FileName: "g.pdf"}))

	_, err = tr.Update(ctx, id, types.UploadUploading, 50, "")
	require.NoError(t, err)
	_, err = tr.Update(ctx, id, types.UploadProcessing, 100, "")
	require.NoError(t, err)
	p, err := tr.Update(ctx, id, types.UploadComplete, 100, "")
	require.NoError(t, err)
	assert.Equal(t, types.UploadComplete, p.Status)

	_, err = tr.Update(ctx, id, types.UploadError, 0, "late")
	var te *TransitionError
	assert.ErrorAs(t, err, &te)

	ttl, err := client.TTL(ctx, key(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	_, err = tr.Get(ctx, "missing-"+id)
	assert.ErrorIs(t, err, ErrUploadNotFound)
}
