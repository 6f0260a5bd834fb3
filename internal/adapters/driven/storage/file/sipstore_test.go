package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikk3r/prefactor-eor/internal/core/domain"
	"github.com/tikk3r/prefactor-eor/internal/sip"
)

func TestSIPStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewSIPStore()
	path := filepath.Join(t.TempDir(), "sips", "L1_SB000_uv.MS.xml")

	doc := sip.New(sip.Project{ProjectCode: "LC2_038"}, sip.DataProduct{
		Type:     sip.TypeCorrelatedDataProduct,
		FileName: "L1_SB000_uv.MS",
	})
	require.NoError(t, store.Save(ctx, path, doc))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "LC2_038", loaded.Project.ProjectCode)
	assert.Equal(t, sip.TypeCorrelatedDataProduct, loaded.DataProduct.Type)
}

func TestSIPStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewSIPStore()
	path := filepath.Join(t.TempDir(), "out.xml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, store.Save(ctx, path, sip.New(sip.Project{ProjectCode: "NEW"}, sip.DataProduct{})))

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "NEW", loaded.Project.ProjectCode)
}

func TestSIPStore_LoadMissing(t *testing.T) {
	_, err := NewSIPStore().Load(context.Background(), filepath.Join(t.TempDir(), "missing.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSIPStore_LoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xml")
	require.NoError(t, os.WriteFile(path, []byte("not xml"), 0o644))

	_, err := NewSIPStore().Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrMalformedSIP)
}
