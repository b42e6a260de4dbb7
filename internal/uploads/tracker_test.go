package uploads

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/brand-ad-studio/internal/types"
)

func TestMemoryTracker_HappyPath(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()
	require.NoError(t, tr.Start(ctx, types.UploadProgress{ID: "u1", FileName: "guide.pdf"}))

	p, err := tr.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, types.UploadUploading, p.Status)
	assert.Equal(t, 0, p.Progress)

	p, err = tr.Update(ctx, "u1", types.UploadUploading, 40, "")
	require.NoError(t, err)
	assert.Equal(t, 40, p.Progress)

	p, err = tr.Update(ctx, "u1", types.UploadProcessing, 100, "")
	require.NoError(t, err)
	assert.Equal(t, types.UploadProcessing, p.Status)

	p, err = tr.Update(ctx, "u1", types.UploadComplete, 0, "")
	require.NoError(t, err)
	assert.Equal(t, types.UploadComplete, p.Status)
	assert.Equal(t, 100, p.Progress)
}

func TestMemoryTracker_RejectsLeavingTerminalStates(t *testing.T) {
	ctx := context.Background()

	for _, terminal := range []types.UploadStatus{types.UploadComplete, types.UploadError} {
		tr := NewMemoryTracker()
		require.NoError(t, tr.Start(ctx, types.UploadProgress{ID: "u"}))
		if terminal == types.UploadComplete {
			_, err := tr.Update(ctx, "u", types.UploadProcessing, 100, "")
			require.NoError(t, err)
		}
		_, err := tr.Update(ctx, "u", terminal, 100, "boom")
		require.NoError(t, err)

		for _, next := range []types.UploadStatus{types.UploadUploading, types.UploadProcessing, types.UploadComplete, types.UploadError} {
			_, err := tr.Update(ctx, "u", next, 0, "")
			var te *TransitionError
			assert.ErrorAs(t, err, &te, "%s -> %s", terminal, next)
		}
	}
}

func TestMemoryTracker_RejectsSkippingProcessing(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()
	require.NoError(t, tr.Start(ctx, types.UploadProgress{ID: "u"}))

	_, err := tr.Update(ctx, "u", types.UploadComplete, 100, "")
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, types.UploadUploading, te.From)
	assert.Equal(t, types.UploadComplete, te.To)

	_, err = tr.Update(ctx, "u", types.UploadProcessing, 100, "")
	require.NoError(t, err)
	_, err = tr.Update(ctx, "u", types.UploadUploading, 10, "")
	assert.ErrorAs(t, err, &te)
}

func TestMemoryTracker_ErrorFromAnyActiveState(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()
	require.NoError(t, tr.Start(ctx, types.UploadProgress{ID: "u"}))

	p, err := tr.Update(ctx, "u", types.UploadError, 30, "storage unavailable")
	require.NoError(t, err)
	assert.Equal(t, types.UploadError, p.Status)
	assert.Equal(t, "storage unavailable", p.Error)
}

func TestMemoryTracker_ProgressClampedAndMonotonic(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()
	require.NoError(t, tr.Start(ctx, types.UploadProgress{ID: "u"}))

	p, err := tr.Update(ctx, "u", types.UploadUploading, 150, "")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Progress)

	p, err = tr.Update(ctx, "u", types.UploadUploading, 20, "")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Progress)
}

func TestMemoryTracker_Unknown(t *testing.T) {
	tr := NewMemoryTracker()
	_, err := tr.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUploadNotFound)
	_, err = tr.Update(context.Background(), "missing", types.UploadError, 0, "")
	assert.ErrorIs(t, err, ErrUploadNotFound)
}
