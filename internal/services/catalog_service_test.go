package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poisurvey/pkg/utils"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pois.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCatalogService_FlattensInOrder(t *testing.T) {
	path := writeCatalog(t, `{"categories":[
		{"name":"Museums","color":"#f00","pois":[
			{"id":"m1","title":"Art House","description":"Paintings.","imagesrc":"m1.jpg"},
			{"id":"m2","title":"Toy Museum","description":"Toys.","imagesrc":"m2.jpg"}]},
		{"name":"Parks","color":"#0f0","pois":[
			{"id":"p1","title":"City Park","description":"Trees.","imagesrc":"p1.jpg"}]}]}`)

	pois, err := NewCatalogService(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, pois, 3)
	assert.Equal(t, []string{"m1", "m2", "p1"}, []string{pois[0].ID, pois[1].ID, pois[2].ID})
	assert.Equal(t, "m2.jpg", pois[1].ImageSrc)
}

func TestCatalogService_EmptyCatalog(t *testing.T) {
	pois, err := NewCatalogService(writeCatalog(t, `{"categories":[]}`)).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pois)
}

func TestCatalogService_Failures(t *testing.T) {
	tests := map[string]string{
		"malformed json": `{"categories":[`,
		"missing id":     `{"categories":[{"name":"x","pois":[{"title":"No id"}]}]}`,
		"duplicate id":   `{"categories":[{"name":"x","pois":[{"id":"a"}]},{"name":"y","pois":[{"id":"a"}]}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalogService(writeCatalog(t, body)).Load(context.Background())
			assert.ErrorIs(t, err, utils.ErrCatalogUnavailable)
		})
	}

	_, err := NewCatalogService(filepath.Join(t.TempDir(), "absent.json")).Load(context.Background())
	assert.ErrorIs(t, err, utils.ErrCatalogUnavailable)
}

func TestCatalogService_RereadsFile(t *testing.T) {
	path := writeCatalog(t, `{"categories":[{"name":"x","pois":[{"id":"a"}]}]}`)
	svc := NewCatalogService(path)

	pois, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, pois, 1)

	require.NoError(t, os.WriteFile(path, []byte(`{"categories":[{"name":"x","pois":[{"id":"a"},{"id":"b"}]}]}`), 0o644))
	pois, err = svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, pois, 2)
}
