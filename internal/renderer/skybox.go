package renderer

import (
	"PeaksAndValleys/internal/logger"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// SkyboxSize is the half-extent of the skybox cube. Kept well inside the
// default camera far plane so the cube corners survive frustum clipping.
var SkyboxSize float32 = 500.0

const skyboxIndexCount = 36

// skyboxFace identifies one cube face. The order fixes the layout of the
// vertex, texture-coordinate, and index buffers.
type skyboxFace int

const (
	skyboxFront skyboxFace = iota
	skyboxBack
	skyboxTop
	skyboxBottom
	skyboxRight
	skyboxLeft
	skyboxFaceCount
)

// atlasCell is one cell of the 4x4 panoramic atlas, as [u0, v0, u1, v1].
type atlasCell [4]float32

// The atlas is a single image holding all six faces in a horizontal-cross
// layout on a 4x4 grid. The mapping is fixed; the image just has to follow it.
var skyboxAtlas = [skyboxFaceCount]atlasCell{
	skyboxFront:  {0.25, 0.50, 0.50, 0.75},
	skyboxBack:   {0.75, 0.50, 1.00, 0.75},
	skyboxTop:    {0.25, 0.75, 0.50, 1.00},
	skyboxBottom: {0.25, 0.25, 0.50, 0.50},
	skyboxRight:  {0.50, 0.50, 0.75, 0.75},
	skyboxLeft:   {0.00, 0.50, 0.25, 0.75},
}

// skyboxVertices returns the 24 cube corner positions (4 per face) for a cube
// of half-extent size centered at the origin.
func skyboxVertices(size float32) []float32 {
	s := size
	return []float32{
		// Front (+Z)
		-s, -s, s,
		s, -s, s,
		s, s, s,
		-s, s, s,

		// Back (-Z)
		-s, -s, -s,
		-s, s, -s,
		s, s, -s,
		s, -s, -s,

		// Top (+Y)
		-s, s, -s,
		-s, s, s,
		s, s, s,
		s, s, -s,

		// Bottom (-Y)
		-s, -s, -s,
		s, -s, -s,
		s, -s, s,
		-s, -s, s,

		// Right (+X)
		s, -s, -s,
		s, s, -s,
		s, s, s,
		s, -s, s,

		// Left (-X)
		-s, -s, -s,
		-s, -s, s,
		-s, s, s,
		-s, s, -s,
	}
}

// skyboxTexCoords returns one atlas coordinate per vertex, walking each
// face's assigned cell corner by corner in the same order as the positions.
func skyboxTexCoords() []float32 {
	coords := make([]float32, 0, int(skyboxFaceCount)*4*2)
	for face := skyboxFace(0); face < skyboxFaceCount; face++ {
		cell := skyboxAtlas[face]
		u0, v0, u1, v1 := cell[0], cell[1], cell[2], cell[3]
		coords = append(coords,
			u0, v0,
			u1, v0,
			u1, v1,
			u0, v1,
		)
	}
	return coords
}

// skyboxIndices returns the 36-entry triangle list, two triangles per face.
func skyboxIndices() []uint16 {
	indices := make([]uint16, 0, skyboxIndexCount)
	for face := 0; face < int(skyboxFaceCount); face++ {
		base := uint16(face * 4)
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return indices
}

// skyboxModelMatrix rebuilds the model matrix from scratch every frame:
// identity plus the stored translation. The skybox never rotates or scales.
func skyboxModelMatrix(position mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z())
}

// skyboxPlaceholder is the 1x1 opaque-blue image uploaded at construction so
// the skybox renders something sane before the atlas finishes loading.
func skyboxPlaceholder() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Pix[0] = 0x00
	rgba.Pix[1] = 0x00
	rgba.Pix[2] = 0xFF
	rgba.Pix[3] = 0xFF
	return rgba
}

// flipImageVertically converts img to RGBA with rows reversed, matching the
// bottom-up texture coordinate convention the atlas cells assume.
func flipImageVertically(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcY := bounds.Min.Y + y
		dstOffset := (height - 1 - y) * rgba.Stride
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, srcY).RGBA()
			offset := dstOffset + x*4
			rgba.Pix[offset+0] = uint8(r >> 8)
			rgba.Pix[offset+1] = uint8(g >> 8)
			rgba.Pix[offset+2] = uint8(b >> 8)
			rgba.Pix[offset+3] = uint8(a >> 8)
		}
	}
	return rgba
}

// Skybox renders a fixed textured cube around the camera. It owns its GPU
// buffers, shader, and texture exclusively.
type Skybox struct {
	vao       uint32
	vbo       uint32
	tbo       uint32
	ebo       uint32
	textureID uint32
	shader    Shader

	position        mgl32.Vec3
	modelMatrix     mgl32.Mat4
	modelViewMatrix mgl32.Mat4

	// Decoded atlas images arrive here from the loader goroutine and are
	// uploaded on the render thread, so the texture swap never races a draw.
	pending chan *image.RGBA
}

// CreateSkybox builds the cube mesh, compiles the skybox shader, uploads the
// placeholder texture, and starts loading the atlas image in the background.
// Setup failures are returned to the caller; partially created GPU objects
// are released before returning.
func CreateSkybox(atlasPath string) (*Skybox, error) {
	skybox := &Skybox{
		modelMatrix:     mgl32.Ident4(),
		modelViewMatrix: mgl32.Ident4(),
		pending:         make(chan *image.RGBA, 1),
	}

	var unwind Unwind
	defer unwind.Unwind()

	vertices := skyboxVertices(SkyboxSize)
	texCoords := skyboxTexCoords()
	indices := skyboxIndices()

	gl.GenVertexArrays(1, &skybox.vao)
	unwind.Add(func() { gl.DeleteVertexArrays(1, &skybox.vao) })
	gl.BindVertexArray(skybox.vao)

	gl.GenBuffers(1, &skybox.vbo)
	unwind.Add(func() { gl.DeleteBuffers(1, &skybox.vbo) })
	gl.BindBuffer(gl.ARRAY_BUFFER, skybox.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &skybox.tbo)
	unwind.Add(func() { gl.DeleteBuffers(1, &skybox.tbo) })
	gl.BindBuffer(gl.ARRAY_BUFFER, skybox.tbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(texCoords)*4, gl.Ptr(texCoords), gl.STATIC_DRAW)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &skybox.ebo)
	unwind.Add(func() { gl.DeleteBuffers(1, &skybox.ebo) })
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, skybox.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	skybox.shader = InitSkyboxShader()
	if err := skybox.shader.Compile(); err != nil {
		return nil, fmt.Errorf("skybox shader: %w", err)
	}

	gl.GenTextures(1, &skybox.textureID)
	unwind.Add(func() { gl.DeleteTextures(1, &skybox.textureID) })
	skybox.uploadTexture(skyboxPlaceholder())

	skybox.loadAtlasAsync(atlasPath)

	unwind.Discard()
	return skybox, nil
}

// SetPosition moves the skybox. The host re-centers it on the camera each
// frame so the cube appears infinitely far away.
func (s *Skybox) SetPosition(position mgl32.Vec3) {
	s.position = position
}

// Render draws the cube with depth testing disabled so it never occludes
// anything. It mutates shared GL state (program, bindings, depth flag); depth
// testing is left enabled on return regardless of its state on entry.
func (s *Skybox) Render(projection, view mgl32.Mat4) {
	s.applyPendingTexture()

	s.modelMatrix = skyboxModelMatrix(s.position)
	s.modelViewMatrix = view.Mul4(s.modelMatrix)

	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)

	s.shader.Use()
	gl.BindVertexArray(s.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.textureID)
	s.shader.SetInt("textureSampler", 0)

	s.shader.SetMat4("projection", projection)
	s.shader.SetMat4("modelView", s.modelViewMatrix)

	gl.DrawElements(gl.TRIANGLES, skyboxIndexCount, gl.UNSIGNED_SHORT, nil)

	gl.BindVertexArray(0)
	gl.DepthMask(true)
	gl.Enable(gl.DEPTH_TEST)
}

// loadAtlasAsync decodes the atlas image off the render thread and queues the
// result for upload. A failed load keeps the placeholder and logs why.
func (s *Skybox) loadAtlasAsync(atlasPath string) {
	go func() {
		imgFile, err := os.Open(atlasPath)
		if err != nil {
			logger.Log.Warn("Skybox atlas not loaded, keeping placeholder",
				zap.String("path", atlasPath), zap.Error(err))
			return
		}
		defer imgFile.Close()

		img, format, err := image.Decode(imgFile)
		if err != nil {
			logger.Log.Warn("Skybox atlas not decoded, keeping placeholder",
				zap.String("path", atlasPath), zap.Error(err))
			return
		}

		s.queueAtlasImage(img)
		logger.Log.Info("Skybox atlas decoded",
			zap.String("path", atlasPath),
			zap.String("format", format),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()))
	}()
}

// queueAtlasImage flips the decoded atlas and hands it to the render thread.
// The channel holds one slot; a newer image replaces an unconsumed older one.
func (s *Skybox) queueAtlasImage(img image.Image) {
	rgba := flipImageVertically(img)
	for {
		select {
		case s.pending <- rgba:
			return
		default:
			select {
			case <-s.pending:
			default:
			}
		}
	}
}

// applyPendingTexture uploads a queued atlas image, if any. Runs on the
// render thread only.
func (s *Skybox) applyPendingTexture() {
	select {
	case rgba := <-s.pending:
		s.uploadTexture(rgba)
	default:
	}
}

func (s *Skybox) uploadTexture(rgba *image.RGBA) {
	gl.BindTexture(gl.TEXTURE_2D, s.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}

// Cleanup releases the skybox GPU resources.
func (s *Skybox) Cleanup() {
	gl.DeleteVertexArrays(1, &s.vao)
	gl.DeleteBuffers(1, &s.vbo)
	gl.DeleteBuffers(1, &s.tbo)
	gl.DeleteBuffers(1, &s.ebo)
	gl.DeleteTextures(1, &s.textureID)
}
