package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}

	if cam.Position == (mgl32.Vec3{0, 0, 0}) {
		t.Error("Camera position should not be at origin")
	}

	if cam.Speed <= 0 {
		t.Error("Camera speed should be positive")
	}

	if cam.Sensitivity <= 0 {
		t.Error("Camera sensitivity should be positive")
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.Front = mgl32.Vec3{0, 0, -1}
	cam.Up = mgl32.Vec3{0, 1, 0}

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraGetViewProjection(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	vp := cam.GetViewProjection()

	zero := mgl32.Mat4{}
	if vp == zero {
		t.Error("ViewProjection should not be zero matrix")
	}
}

func TestCameraUpdateVectors(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	cam.Yaw = -90
	cam.Pitch = 0

	cam.updateCameraVectors()

	frontLen := cam.Front.Len()
	if math.Abs(float64(frontLen)-1.0) > 0.01 {
		t.Errorf("Front vector should be normalized, length=%f", frontLen)
	}
}

func TestCameraFarPlaneCoversSkybox(t *testing.T) {
	cam := NewDefaultCamera(600, 800)

	// The skybox cube corners sit at SkyboxSize*sqrt(3) from its center
	corner := float64(SkyboxSize) * math.Sqrt(3)
	if float64(cam.Far) < corner {
		t.Errorf("Far plane %f clips the skybox corners at %f", cam.Far, corner)
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	cam := NewDefaultCamera(600, 800)
	frustum := cam.CalculateFrustum()

	// A sphere around the point the camera looks at must be visible
	target := cam.Position.Add(cam.Front.Mul(50))
	if !frustum.IntersectsSphere(target, 1.0) {
		t.Error("Sphere in front of the camera should intersect the frustum")
	}

	// A small sphere far behind the camera must be culled
	behind := cam.Position.Sub(cam.Front.Mul(100))
	if frustum.IntersectsSphere(behind, 1.0) {
		t.Error("Sphere behind the camera should be culled")
	}
}
