package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_MismoPunto(t *testing.T) {
	assert.InDelta(t, 0, DistanceMeters(19.4326, -99.1332, 19.4326, -99.1332), 1e-6)
}

func TestDistanceMeters_ZocaloAngel(t *testing.T) {
	// Zócalo CDMX -> Ángel de la Independencia, ~3.5 km en línea recta.
	d := DistanceMeters(19.4326, -99.1332, 19.4270, -99.1677)
	assert.InDelta(t, 3670, d, 150)
}

func TestWithin(t *testing.T) {
	ok, d := Within(19.4326, -99.1332, 100, 19.4330, -99.1332)
	assert.True(t, ok)
	assert.Less(t, d, 100.0)

	ok, _ = Within(19.4326, -99.1332, 100, 19.4400, -99.1332)
	assert.False(t, ok, "~820 m al norte queda fuera de 100 m")
}
