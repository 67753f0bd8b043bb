package lights

import (
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func radius(x, z float32) float64 {
	return math.Sqrt(float64(x*x + z*z))
}

func TestRotateXZKeepsRadius(t *testing.T) {

	points := [][2]float32{{-60, 40}, {1, 0}, {0, 0}, {123.5, -77.25}}
	angles := []float32{0, 0.016, 0.2, 1, math.Pi, 17.3}

	for _, p := range points {
		for _, theta := range angles {
			nx, nz := RotateXZ(p[0], p[1], theta)
			assert.InDelta(t, radius(p[0], p[1]), radius(nx, nz), 1e-3, "point=%v theta=%v", p, theta)
		}
	}
}

func TestRotateXZZeroIsIdentity(t *testing.T) {

	nx, nz := RotateXZ(-60, 40, 0)
	assert.Equal(t, float32(-60), nx)
	assert.Equal(t, float32(40), nz)
}

func TestRotateXZQuarterTurn(t *testing.T) {

	nx, nz := RotateXZ(1, 0, math.Pi/2)
	assert.InDelta(t, 0, nx, 1e-6)
	assert.InDelta(t, 1, nz, 1e-6)
}

func TestRotatorAtTimeZero(t *testing.T) {

	for _, mode := range []RotationMode{RotationPerFrame, RotationCumulative} {

		light := NewDirLight(gglm.NewVec3(-60, 50, 40), DefaultFrustumSize, DefaultShadowMapSize)
		r := NewRotator(DefaultRotationSpeed, mode)

		r.Update(light, 0, 0)

		assert.Equal(t, float32(-60), light.Pos.X(), mode.String())
		assert.Equal(t, float32(50), light.Pos.Y(), mode.String())
		assert.Equal(t, float32(40), light.Pos.Z(), mode.String())
	}
}

func TestRotatorModes(t *testing.T) {

	perFrame := NewRotator(0.2, RotationPerFrame)
	cumulative := NewRotator(0.2, RotationCumulative)

	assert.InDelta(t, 0.2*0.5, perFrame.Angle(0.5, 10), 1e-6)
	assert.InDelta(t, 0.2*10, cumulative.Angle(0.5, 10), 1e-6)
}

func TestRotatorConstantVelocity(t *testing.T) {

	light := NewDirLight(gglm.NewVec3(-60, 50, 40), DefaultFrustumSize, DefaultShadowMapSize)
	r := NewRotator(0.2, RotationPerFrame)

	startAngle := math.Atan2(float64(light.Pos.Z()), float64(light.Pos.X()))
	elapsed := float32(0)
	for i := 0; i < 100; i++ {
		elapsed += 0.01
		r.Update(light, 0.01, elapsed)
	}

	endAngle := math.Atan2(float64(light.Pos.Z()), float64(light.Pos.X()))
	assert.InDelta(t, 0.2, endAngle-startAngle, 1e-3)
	assert.InDelta(t, radius(-60, 40), radius(light.Pos.X(), light.Pos.Z()), 1e-3)
	assert.Equal(t, float32(50), light.Pos.Y())
}

func TestRotatorSyncsShadowCam(t *testing.T) {

	light := NewDirLight(gglm.NewVec3(-60, 50, 40), DefaultFrustumSize, DefaultShadowMapSize)
	r := NewRotator(0.2, RotationPerFrame)

	r.Update(light, 0.5, 0.5)

	require.Equal(t, light.Pos, light.ShadowCam.Pos)

	// Forward must point from the light to the origin
	l := float32(math.Sqrt(float64(light.Pos.X()*light.Pos.X() + light.Pos.Y()*light.Pos.Y() + light.Pos.Z()*light.Pos.Z())))
	assert.InDelta(t, -light.Pos.X()/l, light.ShadowCam.Forward.X(), 1e-5)
	assert.InDelta(t, -light.Pos.Y()/l, light.ShadowCam.Forward.Y(), 1e-5)
	assert.InDelta(t, -light.Pos.Z()/l, light.ShadowCam.Forward.Z(), 1e-5)
}

func TestParseRotationMode(t *testing.T) {

	m, err := ParseRotationMode("per_frame")
	require.NoError(t, err)
	assert.Equal(t, RotationPerFrame, m)

	m, err = ParseRotationMode(RotationCumulative.String())
	require.NoError(t, err)
	assert.Equal(t, RotationCumulative, m)

	_, err = ParseRotationMode("sideways")
	assert.Error(t, err)
}

func hasNaN(m *gglm.Mat4) bool {

	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			if math.IsNaN(float64(m.Data[col][row])) {
				return true
			}
		}
	}

	return false
}

func TestShadowCamAboveOrigin(t *testing.T) {

	for _, y := range []float32{50, -50} {

		light := NewDirLight(gglm.NewVec3(0, y, 0), DefaultFrustumSize, DefaultShadowMapSize)
		assert.False(t, hasNaN(&light.ShadowCam.ViewMat), "y=%v", y)
		assert.False(t, hasNaN(&light.ShadowCam.ProjMat), "y=%v", y)

		// Moving off the Y axis restores the regular up vector
		light.Pos = gglm.NewVec3(10, y, 0)
		light.SyncShadowCam()
		assert.False(t, hasNaN(&light.ShadowCam.ViewMat), "y=%v", y)
		assert.Equal(t, float32(1), light.ShadowCam.WorldUp.Y())
	}
}

func TestShadowCamDepthFollowsFrustumSize(t *testing.T) {

	for _, size := range []float32{50, DefaultFrustumSize, 500} {

		light := NewDirLight(gglm.NewVec3(-60, 50, 40), size, DefaultShadowMapSize)
		assert.Equal(t, size, light.ShadowCam.FarClip)
		assert.Equal(t, DefaultShadowNear, light.ShadowCam.NearClip)
		assert.Equal(t, size/2, light.ShadowCam.Right)
		assert.Equal(t, size/2, light.ShadowCam.Top)
	}
}
