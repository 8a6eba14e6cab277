package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-mmg/internal/domain"
)

func TestDefault_ValidatesEveryListedPair(t *testing.T) {
	c := Default()
	require.Len(t, c.Categories(), 6)
	for _, cat := range c.Categories() {
		for _, it := range c.Items(cat) {
			assert.True(t, c.Validate(cat, it), "%s/%s", cat, it)
			got, ok := c.CategoryOf(it)
			assert.True(t, ok)
			assert.Equal(t, cat, got)
		}
	}
}

func TestDefault_RejectsMismatchedPairs(t *testing.T) {
	c := Default()
	assert.False(t, c.Validate("Electronics", "Broom"))
	assert.False(t, c.Validate("Gadgets", "Laptop"))
	assert.False(t, c.Validate("Electronics", "laptop"))
	assert.False(t, c.Validate("Lab Equipment", "Test Kit"))

	err := c.Check("Furniture", "Keyboard")
	assert.True(t, errors.Is(err, domain.ErrInvalidItem))
	assert.Contains(t, err.Error(), "Chair")
	assert.NoError(t, c.Check("Electronics", "Keyboard"))
}

func TestExtended(t *testing.T) {
	c := Extended()
	assert.True(t, c.Validate("Lab Equipment", "Test Kit"))
	assert.True(t, c.Validate("Electronics", "Calculator"))
	assert.True(t, c.Validate("Tools", "Microscope"))
	assert.True(t, c.Validate("Electronics", "Laptop"))
	assert.Len(t, c.Categories(), 7)
}

func TestNew_RejectsBadTables(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New([]Category{{Name: "A", Items: nil}})
	assert.Error(t, err)

	_, err = New([]Category{{Name: " ", Items: []string{"x"}}})
	assert.Error(t, err)

	_, err = New([]Category{{Name: "A", Items: []string{"x"}}, {Name: "B", Items: []string{"x"}}})
	assert.Error(t, err, "un artículo no puede estar en dos categorías")
}

func TestItemsReturnsCopy(t *testing.T) {
	c := Default()
	items := c.Items("Tools")
	items[0] = "Mutado"
	assert.True(t, c.Validate("Tools", "Screwdriver Set"))
	assert.False(t, c.Validate("Tools", "Mutado"))
	assert.Nil(t, c.Items("Nope"))
}

func TestForVariant(t *testing.T) {
	c, ok := ForVariant("extended")
	require.True(t, ok)
	assert.True(t, c.Validate("Lab Equipment", "Test Kit"))
	_, ok = ForVariant("legacy")
	assert.False(t, ok)
}

func TestDepartments(t *testing.T) {
	assert.True(t, ValidDepartment("MMG"))
	assert.True(t, ValidDepartment("FC&HB"))
	assert.False(t, ValidDepartment("mmg"))
	assert.Len(t, Departments(), 16)
}
