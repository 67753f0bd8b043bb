package materials

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialSettings(t *testing.T) {

	var s MaterialSettings
	assert.False(t, s.Has(MaterialSettings_HasModelMtx))

	s.Set(MaterialSettings_HasModelMtx | MaterialSettings_HasNormalMtx)
	assert.True(t, s.Has(MaterialSettings_HasModelMtx))
	assert.True(t, s.Has(MaterialSettings_HasModelMtx|MaterialSettings_HasNormalMtx))

	s.Remove(MaterialSettings_HasNormalMtx)
	assert.True(t, s.Has(MaterialSettings_HasModelMtx))
	assert.False(t, s.Has(MaterialSettings_HasNormalMtx))
}

func TestMaterialIdsAreUnique(t *testing.T) {

	a := getNewMatId()
	b := getNewMatId()
	assert.NotEqual(t, a, b)
	assert.NotZero(t, a)
}
