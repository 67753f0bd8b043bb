package scene

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/shadowmapping/renderer"
)

// MaterialPair are the two materials of an object. Both share the same vertex stage
// and the same per-frame uniforms, so the shadow pass sees what the color pass draws.
type MaterialPair struct {
	Color  renderer.Material
	Shadow renderer.Material
}

type Object struct {
	Name      string
	Geometry  renderer.Geometry
	Transform gglm.TrMat
	Color     gglm.Vec3
	Pair      MaterialPair

	// active aliases one of Pair.Color/Pair.Shadow
	active renderer.Material
}

// SelectMaterial returns the material obj should be drawn with in pass
func SelectMaterial(obj *Object, pass renderer.Pass) renderer.Material {

	if pass == renderer.Pass_Shadow {
		return obj.Pair.Shadow
	}

	return obj.Pair.Color
}

// Bind makes the material of pass the active one and returns it
func (o *Object) Bind(pass renderer.Pass) renderer.Material {
	o.active = SelectMaterial(o, pass)
	return o.active
}

// Active is the material of the last bound pass, or nil if the object was never drawn
func (o *Object) Active() renderer.Material {
	return o.active
}

func NewObject(name string, geom renderer.Geometry, pos gglm.Vec3, color gglm.Vec3, pair MaterialPair) *Object {

	trMat := gglm.NewTrMatId()
	trMat.TranslateVec(&pos)

	o := &Object{
		Name:      name,
		Geometry:  geom,
		Transform: *trMat.Clone(),
		Color:     color,
		Pair:      pair,
	}

	o.Pair.Color.SetUnifVec3("uColor", &o.Color)
	return o
}
