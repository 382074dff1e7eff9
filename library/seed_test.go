package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeedShape(t *testing.T) {
	data, err := DefaultSeed()
	require.NoError(t, err)
	require.Len(t, data.Departments, 5)
	for _, dep := range data.Departments {
		assert.Len(t, dep.Books, 6, dep.Name)
	}
}

func TestLoadSeedRejectsDuplicates(t *testing.T) {
	_, err := LoadSeed(strings.NewReader(`{"departments":[{"name":"Arts"},{"name":" arts "}]}`))
	require.Error(t, err)

	_, err = LoadSeed(strings.NewReader(`{"departments":[{"name":"  "}]}`))
	require.Error(t, err)

	_, err = LoadSeed(strings.NewReader(`{"departments":`))
	require.Error(t, err)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	doc := `{"departments":[{"name":"Geology","books":[{"title":" Rocks ","author":"Ann","isbn":"1","year":1999}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	data, err := LoadSeedFile(path)
	require.NoError(t, err)

	mgr := newManager(t)
	require.NoError(t, mgr.Seed(data))
	dep, books, err := mgr.ListBooksByDepartment("GEOLOGY")
	require.NoError(t, err)
	assert.Equal(t, "Geology", dep.Name)
	require.Len(t, books, 1)
	assert.Equal(t, "Rocks", books[0].Title)
	assert.False(t, books[0].Borrowed)
}
