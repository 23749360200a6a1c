package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/gridlex/internal/model"
)

func TestParseAssignments(t *testing.T) {
	pairs, err := parseAssignments([]string{"name=Ada", "role= CTO ", "email="})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"name", "Ada"}, {"role", " CTO "}, {"email", ""}}, pairs)

	_, err = parseAssignments([]string{"name"})
	assert.Error(t, err)
	_, err = parseAssignments([]string{"=x"})
	assert.Error(t, err)
}

func TestParseLatLng(t *testing.T) {
	loc, err := parseLatLng("51.5074, -0.1278")
	require.NoError(t, err)
	assert.Equal(t, model.Location{Lat: 51.5074, Lng: -0.1278}, loc)

	for _, bad := range []string{"", "51.5", "x,1", "1,y", "91,0", "0,181"} {
		_, err := parseLatLng(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseColumns(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "value"}, parseColumns(" id, name,,value "))
	assert.Nil(t, parseColumns(""))
}
