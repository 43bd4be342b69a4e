package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kbchat/internal/core/domain"
)

func TestNewMemoryStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	s, err := NewMemoryStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFileName), s.Path())
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestMemoryStore_LoadMissing(t *testing.T) {
	s, err := NewMemoryStore(t.TempDir())
	require.NoError(t, err)

	state, status, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.LoadStatusDefaultedMissing, status)
	assert.Equal(t, domain.EmptyMemory(), state)
}

func TestMemoryStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("{not json"), 0o600))
	s, err := NewMemoryStore(dir)
	require.NoError(t, err)

	state, status, err := s.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrCorruptState)
	assert.Equal(t, domain.LoadStatusDefaultedCorrupt, status)
	assert.Equal(t, domain.EmptyMemory(), state)
}

func TestMemoryStore_SaveLoadRoundTrip(t *testing.T) {
	s, err := NewMemoryStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	in := domain.EmptyMemory()
	in.SelfName = "Somchai"
	in.AddFact(domain.SelfNameFact("Somchai"))
	in.CompanyAlias["td"] = "TRANSDEV.CO.TH"
	require.NoError(t, s.Save(ctx, in))

	out, status, err := s.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.LoadStatusLoaded, status)
	assert.Equal(t, in, out)
}

func TestMemoryStore_SaveShape(t *testing.T) {
	s, err := NewMemoryStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), domain.EmptyMemory()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"selfName":null,"facts":[],"companyAlias":{}}`, string(data))
}

func TestMemoryStore_LoadDeduplicatesFacts(t *testing.T) {
	dir := t.TempDir()
	raw := `{"selfName":"Nok","facts":["a","a","b"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(raw), 0o600))
	s, err := NewMemoryStore(dir)
	require.NoError(t, err)

	state, _, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Nok", state.SelfName)
	assert.Equal(t, []string{"a", "b"}, state.Facts)
	assert.NotNil(t, state.CompanyAlias)
}
