package atmos

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBumpValueAtCenterEqualsAmplitude(t *testing.T) {
	b := bumpSpec{ampK: 3, x0: 100, z0: 200, xrad: 10, zrad: 10}
	assert.InDelta(t, 3.0, bumpValue(100, 200, b), 1e-12)
}

func TestBumpValueOutsideRadiusIsZero(t *testing.T) {
	b := bumpSpec{ampK: 3, x0: 0, z0: 0, xrad: 10, zrad: 10}
	assert.Equal(t, 0.0, bumpValue(100, 100, b))
}

func TestHydroConstThetaMatchesSurfaceExner(t *testing.T) {
	rho, theta := hydroConstTheta(0)
	assert.Equal(t, 300.0, theta)
	// At z=0 the Exner function is 1, so p = p0 exactly.
	rhoTheta := math.Pow(P0/C0, 1/Gamma)
	assert.InDelta(t, rhoTheta/300., rho, 1e-6)
}

func TestHydroConstBVFreqMatchesSurfaceTheta(t *testing.T) {
	_, theta := hydroConstBVFreq(0)
	assert.InDelta(t, 300.0, theta, 1e-9)
}

func TestScenarioEvalSuperposesBumps(t *testing.T) {
	scn := Scenarios[DataSpecCollision]
	_, _, _, thetaPrime, _, _ := scn.Eval(XLen/2, 2000)
	assert.Greater(t, thetaPrime, 0.0)
}

func TestScenariosRegistryCoversFixedValueSpace(t *testing.T) {
	for _, d := range []DataSpec{DataSpecCollision, DataSpecThermal, DataSpecGravityWaves, DataSpecDensityCurrent, DataSpecInjection} {
		_, ok := Scenarios[d]
		assert.True(t, ok, "missing scenario for %v", d)
	}
	_, ok := Scenarios[DataSpec(4)]
	assert.False(t, ok)
}
