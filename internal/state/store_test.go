package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	s := NewSnapshotStore()
	require.NoError(t, s.Open(":memory:"))
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate())
	return s
}

func TestSaveAndGetSnapshot(t *testing.T) {
	s := openTestStore(t)

	doc := []byte(`{"data":{"__schema":{"queryType":{"name":"Query"},"types":[]}}}`)
	snap, err := s.SaveSnapshot("api", "v1", doc)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.NotEmpty(t, snap.Checksum)

	got, err := s.GetSnapshot(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "api", got.Endpoint)
	assert.Equal(t, "v1", got.Label)
	assert.Equal(t, doc, got.Document)
	assert.Equal(t, snap.Checksum, got.Checksum)
}

func TestGetSnapshotNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetSnapshot("nope")
	require.ErrorIs(t, err, ErrSnapshotNotFound)

	_, err = s.GetByLabel("api", "v9")
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestGetByLabel(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SaveSnapshot("api", "v1", []byte(`{"v":1}`))
	require.NoError(t, err)
	_, err = s.SaveSnapshot("api", "v2", []byte(`{"v":2}`))
	require.NoError(t, err)

	got, err := s.GetByLabel("api", "v2")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":2}`), got.Document)
}

func TestListSnapshotsOrder(t *testing.T) {
	s := openTestStore(t)

	for _, label := range []string{"v1", "v2", "v3"} {
		_, err := s.SaveSnapshot("api", label, []byte(label))
		require.NoError(t, err)
	}
	_, err := s.SaveSnapshot("other", "v1", []byte("x"))
	require.NoError(t, err)

	snaps, err := s.ListSnapshots("api")
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, "v1", snaps[0].Label)
	assert.Equal(t, "v2", snaps[1].Label)
	assert.Equal(t, "v3", snaps[2].Label)

	all, err := s.ListSnapshots("")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestDeleteSnapshot(t *testing.T) {
	s := openTestStore(t)

	snap, err := s.SaveSnapshot("api", "", []byte("doc"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteSnapshot(snap.ID))
	require.ErrorIs(t, s.DeleteSnapshot(snap.ID), ErrSnapshotNotFound)
}

func TestStoreRequiresOpen(t *testing.T) {
	s := NewSnapshotStore()
	_, err := s.SaveSnapshot("api", "", []byte("doc"))
	require.Error(t, err)
}
