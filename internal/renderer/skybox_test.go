package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSkyboxMeshCounts(t *testing.T) {
	vertices := skyboxVertices(1)
	if len(vertices) != 72 {
		t.Errorf("Expected 24 positions (72 floats), got %d floats", len(vertices))
	}

	texCoords := skyboxTexCoords()
	if len(texCoords) != 48 {
		t.Errorf("Expected 24 texture coordinates (48 floats), got %d floats", len(texCoords))
	}

	indices := skyboxIndices()
	if len(indices) != skyboxIndexCount {
		t.Errorf("Expected %d indices, got %d", skyboxIndexCount, len(indices))
	}
}

func TestSkyboxIndicesInRange(t *testing.T) {
	for i, index := range skyboxIndices() {
		if index > 23 {
			t.Errorf("Index %d out of range: %d (max 23)", i, index)
		}
	}
}

func TestSkyboxIndicesStayOnFace(t *testing.T) {
	// Each face's two triangles must only reference that face's 4 vertices
	indices := skyboxIndices()
	for face := 0; face < int(skyboxFaceCount); face++ {
		lo := uint16(face * 4)
		hi := lo + 3
		for _, index := range indices[face*6 : face*6+6] {
			if index < lo || index > hi {
				t.Errorf("Face %d references vertex %d, want [%d,%d]", face, index, lo, hi)
			}
		}
	}
}

func TestSkyboxVerticesOnCube(t *testing.T) {
	size := float32(500)
	for i, v := range skyboxVertices(size) {
		if v != size && v != -size {
			t.Errorf("Vertex component %d is %f, want ±%f", i, v, size)
		}
	}
}

func TestSkyboxAtlasMapping(t *testing.T) {
	cases := []struct {
		name string
		face skyboxFace
		cell atlasCell
	}{
		{"front", skyboxFront, atlasCell{0.25, 0.50, 0.50, 0.75}},
		{"back", skyboxBack, atlasCell{0.75, 0.50, 1.00, 0.75}},
		{"top", skyboxTop, atlasCell{0.25, 0.75, 0.50, 1.00}},
		{"bottom", skyboxBottom, atlasCell{0.25, 0.25, 0.50, 0.50}},
		{"right", skyboxRight, atlasCell{0.50, 0.50, 0.75, 0.75}},
		{"left", skyboxLeft, atlasCell{0.00, 0.50, 0.25, 0.75}},
	}

	texCoords := skyboxTexCoords()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if skyboxAtlas[tc.face] != tc.cell {
				t.Fatalf("Atlas cell for %s is %v, want %v", tc.name, skyboxAtlas[tc.face], tc.cell)
			}
			// All 4 of the face's coordinates must fall inside its cell
			base := int(tc.face) * 8
			for v := 0; v < 4; v++ {
				u := texCoords[base+v*2]
				w := texCoords[base+v*2+1]
				if u < tc.cell[0] || u > tc.cell[2] || w < tc.cell[1] || w > tc.cell[3] {
					t.Errorf("Vertex %d of %s maps to (%f,%f), outside cell %v", v, tc.name, u, w, tc.cell)
				}
			}
		})
	}
}

func TestSkyboxPlaceholderIsOpaqueBlue(t *testing.T) {
	placeholder := skyboxPlaceholder()

	bounds := placeholder.Bounds()
	if bounds.Dx() != 1 || bounds.Dy() != 1 {
		t.Fatalf("Placeholder should be 1x1, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	r, g, b, a := placeholder.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0xFFFF || a != 0xFFFF {
		t.Errorf("Placeholder should be opaque blue, got (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestSkyboxModelMatrixIsPureTranslation(t *testing.T) {
	position := mgl32.Vec3{10, -20, 30}

	model := skyboxModelMatrix(position)

	want := mgl32.Translate3D(10, -20, 30)
	if model != want {
		t.Errorf("Model matrix should be the pure translation, got %v", model)
	}
}

func TestSkyboxModelViewWithIdentityView(t *testing.T) {
	// Translation-only position and identity view: the model-view must equal
	// the pure translation matrix
	position := mgl32.Vec3{1, 2, 3}
	view := mgl32.Ident4()

	modelView := view.Mul4(skyboxModelMatrix(position))

	if modelView != mgl32.Translate3D(1, 2, 3) {
		t.Errorf("Model-view should equal the translation matrix, got %v", modelView)
	}
}

func TestSkyboxModelViewAtOrigin(t *testing.T) {
	modelView := mgl32.Ident4().Mul4(skyboxModelMatrix(mgl32.Vec3{0, 0, 0}))

	if modelView != mgl32.Ident4() {
		t.Errorf("Model-view at origin with identity view should be identity, got %v", modelView)
	}
}

func TestFlipImageVertically(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})

	flipped := flipImageVertically(img)

	r, _, _, _ := flipped.At(0, 1).RGBA()
	_, _, b, _ := flipped.At(0, 0).RGBA()
	if r != 0xFFFF {
		t.Error("Top row should end up at the bottom after flipping")
	}
	if b != 0xFFFF {
		t.Error("Bottom row should end up at the top after flipping")
	}
}

func TestSkyboxQueueAtlasImage(t *testing.T) {
	s := &Skybox{pending: make(chan *image.RGBA, 1)}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	s.queueAtlasImage(img)

	select {
	case queued := <-s.pending:
		if queued.Bounds().Dx() != 2 || queued.Bounds().Dy() != 2 {
			t.Errorf("Queued image has bounds %v, want 2x2", queued.Bounds())
		}
	default:
		t.Fatal("Queued image should be pending for the render thread")
	}
}

func TestSkyboxQueueAtlasImageReplacesStale(t *testing.T) {
	s := &Skybox{pending: make(chan *image.RGBA, 1)}

	s.queueAtlasImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	s.queueAtlasImage(image.NewRGBA(image.Rect(0, 0, 4, 4)))

	queued := <-s.pending
	if queued.Bounds().Dx() != 4 {
		t.Errorf("Newest image should replace an unconsumed one, got %v", queued.Bounds())
	}

	select {
	case <-s.pending:
		t.Error("Only one image should remain queued")
	default:
	}
}
