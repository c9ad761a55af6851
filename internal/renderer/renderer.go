package renderer

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var FrustumCullingEnabled bool = false
var FaceCullingEnabled bool = false
var Debug bool = false
var DepthTestEnabled bool = true
var ClearColorR float32 = 0.53 // Background clear color, a hazy horizon blue
var ClearColorG float32 = 0.70
var ClearColorB float32 = 0.92

// Light is the scene sun. The terrain shader only consumes directional
// lights; Position is kept for point-light experiments in demos.
type Light struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// CreateSunlight creates the default directional light for outdoor scenes.
func CreateSunlight(direction mgl32.Vec3) *Light {
	return &Light{
		Direction: direction.Normalize(),
		Color:     mgl32.Vec3{1.0, 0.95, 0.8},
		Intensity: 1.2,
	}
}

type Render interface {
	Init(width, height int32, window *glfw.Window) error
	Render(camera Camera, light *Light)
	AddModel(model *Model)
	RemoveModel(model *Model)
	SetSkybox(skybox *Skybox)
	UpdateViewport(width, height int32)
	Cleanup()
}
