package scene

import (
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/shadowmapping/camera"
	"github.com/bloeys/shadowmapping/config"
	"github.com/bloeys/shadowmapping/lights"
	"github.com/bloeys/shadowmapping/renderer"
	"github.com/bloeys/shadowmapping/timing"
)

const (
	GroundColorHex uint32 = 0xe1e5ea
	ObjectColorHex uint32 = 0xfaf3f3
	ClearColorHex  uint32 = 0xe1e5ea

	groundSize     float32 = 250
	cubeSize       float32 = 20
	sphereRadius   float32 = 24
	sphereSegments uint32  = 32
)

// Assets creates the GPU side resources of the scene
type Assets interface {
	Box(name string, width, height, depth float32) (renderer.Geometry, error)
	Sphere(name string, radius float32, widthSegments, heightSegments uint32) (renderer.Geometry, error)
	Model(name, path string) (renderer.Geometry, error)

	// MaterialPair is called after ShadowMap, so color materials can sample the shadow map
	MaterialPair(name string) (MaterialPair, error)
	ShadowMap(size uint32) (renderer.Target, error)
}

// NewDemoContext builds the ground, cube and sphere scene plus any extra models in cfg
func NewDemoContext(cfg *config.Config, assets Assets, clock *timing.Clock) (*Context, error) {

	rotMode, err := lights.ParseRotationMode(cfg.Light.RotationMode)
	if err != nil {
		return nil, err
	}

	lightPos := gglm.NewVec3(cfg.Light.Position[0], cfg.Light.Position[1], cfg.Light.Position[2])
	light := lights.NewDirLight(lightPos, cfg.Light.FrustumSize, cfg.Light.ShadowMapSize)

	light.ShadowMap, err = assets.ShadowMap(light.ShadowMapSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create shadow map: %w", err)
	}

	camPos := gglm.NewVec3(90*2, 60*2, 90*2)
	camForward := gglm.NewVec3(0, 0, -1)
	camWorldUp := gglm.NewVec3(0, 1, 0)
	mainCam := camera.NewPerspective(
		&camPos,
		&camForward,
		&camWorldUp,
		DefaultCamNear, DefaultCamFar,
		DefaultFovDeg*gglm.Deg2Rad,
		float32(cfg.Window.Width)/float32(cfg.Window.Height),
	)

	origin := gglm.NewVec3(0, 0, 0)
	mainCam.LookAt(&origin)

	ctx := &Context{
		Objects:         make([]*Object, 0, 3+len(cfg.Models)),
		MainCam:         mainCam,
		Orbit:           camera.NewOrbit(&mainCam, origin),
		Light:           light,
		Rotator:         lights.NewRotator(cfg.Light.RotationSpeed, rotMode),
		Clock:           clock,
		Intensity:       gglm.NewVec4(1, 0, 0, 0),
		ClearColor:      ColorFromHex(ClearColorHex),
		DepthMapSlot:    DefaultDepthMapSlot,
		ShowDepthViewer: cfg.Debug.ShowDepthViewer,
		DepthViewerSize: cfg.Debug.DepthViewerSize,
	}

	ground, err := assets.Box("ground", groundSize, groundSize, groundSize)
	if err != nil {
		return nil, err
	}

	if err := ctx.addObject("ground", ground, gglm.NewVec3(0, -groundSize/2, 0), GroundColorHex, assets); err != nil {
		return nil, err
	}

	cube, err := assets.Box("cube", cubeSize, cubeSize, cubeSize)
	if err != nil {
		return nil, err
	}

	if err := ctx.addObject("cube", cube, gglm.NewVec3(40, cubeSize/2, -30), ObjectColorHex, assets); err != nil {
		return nil, err
	}

	sphere, err := assets.Sphere("sphere", sphereRadius, sphereSegments, sphereSegments)
	if err != nil {
		return nil, err
	}

	if err := ctx.addObject("sphere", sphere, gglm.NewVec3(-20, sphereRadius, 0), ObjectColorHex, assets); err != nil {
		return nil, err
	}

	for i := 0; i < len(cfg.Models); i++ {

		m := &cfg.Models[i]
		name := fmt.Sprintf("model-%d", i)

		geom, err := assets.Model(name, m.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load model '%s': %w", m.Path, err)
		}

		color := m.Color
		if color == 0 {
			color = ObjectColorHex
		}

		if err := ctx.addObject(name, geom, gglm.NewVec3(m.Position[0], m.Position[1], m.Position[2]), color, assets); err != nil {
			return nil, err
		}

		obj := ctx.Objects[len(ctx.Objects)-1]
		obj.Transform.Scale(m.Scale, m.Scale, m.Scale)
	}

	ctx.Resize(cfg.Window.Width, cfg.Window.Height, 1)
	return ctx, nil
}

func (c *Context) addObject(name string, geom renderer.Geometry, pos gglm.Vec3, colorHex uint32, assets Assets) error {

	pair, err := assets.MaterialPair(name)
	if err != nil {
		return fmt.Errorf("failed to create materials of '%s': %w", name, err)
	}

	c.Objects = append(c.Objects, NewObject(name, geom, pos, ColorFromHex(colorHex), pair))
	return nil
}
