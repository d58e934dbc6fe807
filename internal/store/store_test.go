package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestLoad_MissingCollection_Empty(t *testing.T) {
	t.Parallel()

	b := NewMemory()
	records := Load[record](b, Products)
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestLoad_CorruptCollection_TreatedAsAbsent(t *testing.T) {
	t.Parallel()

	b := NewMemory()
	require.NoError(t, b.Put(Products, []byte("{definitely not json")))

	records := Load[record](b, Products)
	assert.Empty(t, records)
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	b := NewMemory()
	in := []record{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}
	require.NoError(t, Save(b, Products, in))

	out := Load[record](b, Products)
	assert.Equal(t, in, out)
}

func TestLoadOne_AbsentCorruptAndPresent(t *testing.T) {
	t.Parallel()

	b := NewMemory()

	_, ok := LoadOne[record](b, CurrentUser)
	assert.False(t, ok)

	require.NoError(t, b.Put(CurrentUser, []byte("][")))
	_, ok = LoadOne[record](b, CurrentUser)
	assert.False(t, ok)

	require.NoError(t, SaveOne(b, CurrentUser, record{ID: "7", Name: "seven"}))
	got, ok := LoadOne[record](b, CurrentUser)
	require.True(t, ok)
	assert.Equal(t, record{ID: "7", Name: "seven"}, got)
}

func TestClear_RemovesEntry(t *testing.T) {
	t.Parallel()

	b := NewMemory()
	require.NoError(t, SaveOne(b, CurrentUser, record{ID: "7"}))
	require.NoError(t, Clear(b, CurrentUser))

	_, ok, err := b.Get(CurrentUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBoltBackend_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.db")

	b, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, Save(b, Products, []record{{ID: "1", Name: "one"}}))
	require.NoError(t, b.Close())

	reopened, err := OpenBolt(path)
	require.NoError(t, err)
	defer reopened.Close()

	out := Load[record](reopened, Products)
	require.Len(t, out, 1)
	assert.Equal(t, "one", out[0].Name)
}

func TestBoltBackend_DeleteAndMissing(t *testing.T) {
	t.Parallel()

	b, err := OpenBolt(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer b.Close()

	_, ok, err := b.Get(Cart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Put(Cart, []byte("[]")))
	require.NoError(t, b.Delete(Cart))

	_, ok, err = b.Get(Cart)
	require.NoError(t, err)
	assert.False(t, ok)
}
