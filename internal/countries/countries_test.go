package countries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	c, ok := Lookup(" pt ")
	require.True(t, ok)
	assert.Equal(t, "+351", c.Prefix)
	assert.Equal(t, "Código Postal", c.PostalLabel)

	_, ok = Lookup("JP")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("br")
	require.NoError(t, err)
	assert.Equal(t, "BR", got)

	got, err = Normalize("JP")
	require.NoError(t, err)
	assert.Equal(t, "JP", got)

	for _, bad := range []string{"", "Brazil", "419", "B"} {
		_, err := Normalize(bad)
		assert.ErrorIs(t, err, ErrUnknownCountry, bad)
	}
}

func TestAllIsACopy(t *testing.T) {
	all := All()
	require.Len(t, all, 8)
	all[0].Name = "changed"
	assert.Equal(t, "Brazil", All()[0].Name)
}

func TestPostalLabel(t *testing.T) {
	assert.Equal(t, "CEP", PostalLabel("BR"))
	assert.Equal(t, "Postal Code", PostalLabel("JP"))
}
