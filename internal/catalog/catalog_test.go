package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"workingna/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 7, c.Len())

	course, ok := c.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "First Aid", course.Name)
	assert.True(t, course.Price.Equal(decimal.NewFromInt(1500)))

	course, ok = c.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "Garden Maintenance (R750)", course.Label())

	_, ok = c.Lookup(99)
	assert.False(t, ok)
	assert.False(t, c.Contains(0))
}

func TestListIsCopy(t *testing.T) {
	c := Default()
	list := c.List()
	list[0].Name = "changed"

	course, _ := c.Lookup(1)
	assert.Equal(t, "First Aid", course.Name)
	assert.Equal(t, 1, c.List()[0].ID)
	assert.Equal(t, 7, c.List()[6].ID)
}

func TestNewRejectsBadCourses(t *testing.T) {
	_, err := New([]models.Course{
		{ID: 1, Name: "a", Price: decimal.NewFromInt(1)},
		{ID: 1, Name: "b", Price: decimal.NewFromInt(2)},
	})
	assert.Error(t, err)

	_, err = New([]models.Course{{ID: 2, Name: "c", Price: decimal.NewFromInt(-5)}})
	assert.Error(t, err)
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	_, ok := c.Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.List())
}

func TestLoad(t *testing.T) {
	logger := zap.NewNop()

	c, err := Load("", logger)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Len())

	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[{"id":10,"name":"Welding","price":"2000"},{"id":11,"name":"Baking","price":499.99}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	c, err = Load(path, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	course, ok := c.Lookup(11)
	require.True(t, ok)
	assert.Equal(t, "499.99", course.Price.String())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), logger)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":1}`), 0o600))
	_, err = Load(bad, logger)
	assert.Error(t, err)
}
