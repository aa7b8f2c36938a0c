package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gogpu/glslspv/ast"
	"github.com/gogpu/glslspv/internal/diag"
)

func TestPutGet(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	session := uuid.New()
	key := NewKey([]byte("stage: vertex\n"), "v1.0")
	items := []diag.Diagnostic{{Kind: diag.MissingFunctionality, Message: "matrix swizzle", Loc: ast.Loc{Line: 3, Column: 9}}}
	require.NoError(t, c.Put(key, NewEntry(session, []uint32{0x07230203, 0x10000}, items)))

	got, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []uint32{0x07230203, 0x10000}, got.Words)
	assert.Equal(t, session.String(), got.Session)
	assert.Equal(t, items, got.Items())
}

func TestGetMissing(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	_, ok, err := c.Get(NewKey([]byte("x"), ""))
	require.NoError(t, err)
	assert.False(t, ok)

	var none *Cache
	_, ok, err = none.Get(NewKey(nil, ""))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, none.Put(NewKey(nil, ""), &Entry{}))
}

func TestGetSkipsOldSchema(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := NewKey([]byte("a"), "")

	data, err := msgpack.Marshal(&Entry{Schema: schemaVersion + 1, Words: []uint32{1}})
	require.NoError(t, err)
	p := c.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewKeyNormalizes(t *testing.T) {
	composed := NewKey([]byte("caf\u00e9"), "opts")
	decomposed := NewKey([]byte("cafe\u0301"), "opts")
	assert.Equal(t, composed, decomposed)
	assert.NotEqual(t, composed, NewKey([]byte("caf\u00e9"), "other"))
}

func TestDropAll(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := NewKey([]byte("a"), "")
	require.NoError(t, c.Put(key, NewEntry(uuid.New(), []uint32{1}, nil)))
	require.NoError(t, c.DropAll())
	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}
