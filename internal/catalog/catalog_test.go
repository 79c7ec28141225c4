package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOrder(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"Resort", "Restaurant", "Activities", "Places"}, c.Categories())

	resorts, err := c.Offerings("Resort")
	require.NoError(t, err)
	assert.Equal(t, "Mermaid Resort", resorts[0])
	assert.Equal(t, "Steps and Garden Resort", resorts[4])
}

func TestOfferingsUnknownCategory(t *testing.T) {
	_, err := Default().Offerings("Spa")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestOfferingByIndex(t *testing.T) {
	c := Default()

	got, err := c.Offering("Activities", 2)
	require.NoError(t, err)
	assert.Equal(t, "Scuba Diving", got)

	for _, i := range []int{0, 6, -1} {
		_, err := c.Offering("Activities", i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, i)
	}
	_, err = c.Offering("Nightlife", 1)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCategoryByIndex(t *testing.T) {
	c := Default()
	got, err := c.Category(4)
	require.NoError(t, err)
	assert.Equal(t, "Places", got)

	_, err = c.Category(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestIndexOf(t *testing.T) {
	c := Default()
	i, err := c.IndexOf("Places", "Coral Garden")
	require.NoError(t, err)
	assert.Equal(t, 5, i)

	_, err = c.IndexOf("Places", "Mermaid Resort")
	assert.ErrorIs(t, err, ErrUnknownOffering)
	assert.True(t, c.Contains("Restaurant", "Badladz"))
	assert.False(t, c.Contains("Restaurant", "badladz"))
}

func TestCatalogIsImmutable(t *testing.T) {
	src := []string{"A", "B"}
	c := New(Category{Name: "X", Offerings: src})
	src[0] = "Z"

	got, err := c.Offerings("X")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)

	got[1] = "Y"
	again, _ := c.Offerings("X")
	assert.Equal(t, []string{"A", "B"}, again)
}
