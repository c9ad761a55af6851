package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:         "default",
	DiffuseColor: [3]float32{1.0, 1.0, 1.0}, // White color
	TextureID:    0,
}

type Model struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix mgl32.Mat4 // Transformation matrix - used every frame
	Position    mgl32.Vec3 // Position in world space
	Scale       mgl32.Vec3 // Scale factors
	Rotation    mgl32.Quat // Rotation quaternion
	Material    *Material  // Material properties pointer
	VAO         uint32     // Vertex Array Object
	VBO         uint32     // Vertex Buffer Object
	EBO         uint32     // Element Buffer Object
	IsDirty     bool       // Needs recalculation flag

	// MEDIUM DATA - Conditional/periodic access
	BoundingSphereCenter mgl32.Vec3 // For frustum culling
	BoundingSphereRadius float32    // For frustum culling
	Shader               Shader     // Custom shader for this model

	// COLD DATA - Initialization only or rarely accessed
	Name            string    // Model name
	Vertices        []float32 // Vertex position data
	Normals         []float32 // Normal vectors
	Faces           []int32   // Face indices
	TextureCoords   []float32 // Texture coordinates
	InterleavedData []float32 // Combined vertex data (pos, uv, normal)
}

type Material struct {
	DiffuseColor [3]float32 // Base color for lighting
	TextureID    uint32     // OpenGL texture ID
	Name         string     // Material name for debugging
	TexturePath  string     // Path to texture file (loaded lazily when OpenGL is ready)
}

func (m *Model) X() float32 {
	return m.Position[0]
}

func (m *Model) Y() float32 {
	return m.Position[1]
}

func (m *Model) Z() float32 {
	return m.Position[2]
}

func (m *Model) Rotate(angleX, angleY, angleZ float32) {
	if m.Rotation == (mgl32.Quat{}) {
		m.Rotation = mgl32.QuatIdent()
	}
	rotationX := mgl32.QuatRotate(mgl32.DegToRad(angleX), mgl32.Vec3{1, 0, 0})
	rotationY := mgl32.QuatRotate(mgl32.DegToRad(angleY), mgl32.Vec3{0, 1, 0})
	rotationZ := mgl32.QuatRotate(mgl32.DegToRad(angleZ), mgl32.Vec3{0, 0, 1})
	m.Rotation = m.Rotation.Mul(rotationX).Mul(rotationY).Mul(rotationZ)
	m.updateModelMatrix()
	m.IsDirty = true
}

// SetPosition sets the position of the model
func (m *Model) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
	m.IsDirty = true
}

func (m *Model) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
	m.IsDirty = true
}

func (m *Model) SetDiffuseColor(r, g, b float32) {
	m.ensureMaterial()
	m.Material.DiffuseColor = [3]float32{r, g, b}
	// Material changes don't affect the transformation matrix, so IsDirty stays
}

func (m *Model) CalculateBoundingSphere() {
	var center mgl32.Vec3
	var maxDistanceSq float32

	numVertices := len(m.Vertices) / 3
	if numVertices == 0 {
		m.BoundingSphereCenter = m.Position
		m.BoundingSphereRadius = 0
		return
	}

	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		transformedVertex := ApplyModelTransformation(vertex, m.Position, m.Scale, m.Rotation)
		center = center.Add(transformedVertex)
	}
	center = center.Mul(1.0 / float32(numVertices))

	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		transformedVertex := ApplyModelTransformation(vertex, m.Position, m.Scale, m.Rotation)
		distanceSq := transformedVertex.Sub(center).LenSqr()
		if distanceSq > maxDistanceSq {
			maxDistanceSq = distanceSq
		}
	}

	m.BoundingSphereCenter = center
	m.BoundingSphereRadius = float32(math.Sqrt(float64(maxDistanceSq)))
}

func (m *Model) updateModelMatrix() {
	// ModelMatrix = translation * rotation * scale; right-to-left this scales
	// first, then rotates, then translates
	scaleMatrix := mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	rotationMatrix := m.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)

	if FrustumCullingEnabled {
		m.CalculateBoundingSphere()
	}
}

func ApplyModelTransformation(vertex, position, scale mgl32.Vec3, rotation mgl32.Quat) mgl32.Vec3 {
	scaledVertex := mgl32.Vec3{vertex[0] * scale[0], vertex[1] * scale[1], vertex[2] * scale[2]}

	// mgl32.Quat doesn't directly multiply with Vec3, so go through Mat4
	rotatedVertex := rotation.Mat4().Mul4x1(scaledVertex.Vec4(1)).Vec3()

	return rotatedVertex.Add(position)
}

func (m *Model) ensureMaterial() {
	if m.Material == nil {
		m.Material = &Material{
			Name:         "default",
			DiffuseColor: [3]float32{1.0, 1.0, 1.0},
			TextureID:    0,
		}
	} else if m.Material == DefaultMaterial {
		// Copy so models never mutate the shared fallback material
		copied := *DefaultMaterial
		m.Material = &copied
	}
}
