package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampRestrictsToRange(t *testing.T) {
	assert.Equal(t, 0, clamp(-5, Resolution))
	assert.Equal(t, 0, clamp(0, Resolution))
	assert.Equal(t, 10, clamp(10, Resolution))
	assert.Equal(t, Resolution-1, clamp(Resolution-1, Resolution))
	assert.Equal(t, Resolution-1, clamp(Resolution, Resolution))
	assert.Equal(t, Resolution-1, clamp(9999, Resolution))
}
