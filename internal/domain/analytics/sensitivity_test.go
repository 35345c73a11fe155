package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSensitivity(t *testing.T) {
	assert.Equal(t, SensitivityLow, ParseSensitivity("low"))
	assert.Equal(t, SensitivityMedium, ParseSensitivity("medium"))
	assert.Equal(t, SensitivityHigh, ParseSensitivity("high"))
	assert.Equal(t, SensitivityMedium, ParseSensitivity(""))
	assert.Equal(t, SensitivityMedium, ParseSensitivity("extreme"))
}
