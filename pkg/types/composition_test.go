package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimensionString(t *testing.T) {
	assert.Equal(t, "600px", Dimension{Value: "600", Unit: UnitPixel}.String())
	assert.Equal(t, "100%", Dimension{Value: "100", Unit: UnitPercent}.String())
	assert.Equal(t, "", Dimension{}.String())
}

func TestDimensionSetIsEmpty(t *testing.T) {
	var set DimensionSet
	assert.True(t, set.IsEmpty())

	set.MinHeight = Dimension{Value: "20", Unit: UnitPixel}
	assert.False(t, set.IsEmpty())
}

func TestCompositionHasPreloader(t *testing.T) {
	comp := &Composition{Name: "demo"}
	assert.False(t, comp.HasPreloader())

	comp.PreloaderScript = "/tmp/demo_edgePreload.js"
	assert.True(t, comp.HasPreloader())
}
