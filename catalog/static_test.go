package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanto-shop/storefront/catalog"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const seed = `{"results":[
  {"id":1,"name":"Chair","slug":"chair","price":500,"category":"furniture"},
  {"id":2,"name":"Desk","slug":"desk","price":1200,"category":"furniture"},
  {"id":3,"name":"Lamp","slug":"lamp","price":80,"category":"lighting"}
]}`

func TestStaticSourceListProducts(t *testing.T) {
	src, err := catalog.NewStaticSource(writeSeed(t, seed))
	require.NoError(t, err)
	ctx := context.Background()

	all, err := src.ListProducts(ctx, catalog.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	furniture, err := src.ListProducts(ctx, catalog.Filter{Category: "furniture"})
	require.NoError(t, err)
	require.Len(t, furniture, 2)
	assert.Equal(t, "Chair", furniture[0].Name)
	assert.Equal(t, "Desk", furniture[1].Name)
}

func TestStaticSourceListCategories(t *testing.T) {
	src, err := catalog.NewStaticSource(writeSeed(t, seed))
	require.NoError(t, err)

	categories, err := src.ListCategories(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, "furniture", categories[0].Slug)
	assert.Equal(t, 2, categories[0].ProductCount)
	assert.Equal(t, "lighting", categories[1].Slug)
	assert.Equal(t, 1, categories[1].ProductCount)
}

func TestStaticSourceBareArraySeed(t *testing.T) {
	src, err := catalog.NewStaticSource(writeSeed(t, `[{"id":1,"name":"Chair","price":500,"category":"furniture"}]`))
	require.NoError(t, err)

	all, err := src.ListProducts(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStaticSourceBadSeed(t *testing.T) {
	_, err := catalog.NewStaticSource(writeSeed(t, "not json"))
	assert.Error(t, err)

	_, err = catalog.NewStaticSource(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
