package renderer

import (
	"PeaksAndValleys/internal/logger"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var currentTextureID uint32 = ^uint32(0) // Initialize with an invalid value
var frustum Frustum
var frustumDirty bool = true

// SetFrustumDirty requests a frustum recalculation on the next frame.
func SetFrustumDirty() {
	frustumDirty = true
}

type OpenGLRenderer struct {
	terrainShader        Shader
	Models               []*Model
	textures             *TextureManager
	skybox               *Skybox // Optional skybox
	defaultTextureID     uint32  // 1x1 white texture for untextured materials
	currentShaderProgram uint32  // Track currently bound shader to avoid unnecessary switches
}

func (rend *OpenGLRenderer) Init(width, height int32, _ *glfw.Window) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl init: %w", err)
	}

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	rend.textures = NewTextureManager()

	// Untextured materials sample this instead of an unbound texture, which
	// core profile would resolve to black
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Pix[0], white.Pix[1], white.Pix[2], white.Pix[3] = 0xFF, 0xFF, 0xFF, 0xFF
	defaultTextureID, err := rend.textures.CreateTextureFromImage(white, "default")
	if err != nil {
		return fmt.Errorf("default texture: %w", err)
	}
	rend.defaultTextureID = defaultTextureID

	gl.Viewport(0, 0, width, height)

	rend.terrainShader = InitTerrainShader()
	if err := rend.terrainShader.Compile(); err != nil {
		return fmt.Errorf("terrain shader: %w", err)
	}

	logger.Log.Info("OpenGL renderer initialized",
		zap.Int32("width", width), zap.Int32("height", height))
	return nil
}

func (rend *OpenGLRenderer) AddModel(model *Model) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InterleavedData)*4, gl.Ptr(model.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Faces)*4, gl.Ptr(model.Faces), gl.STATIC_DRAW)

	// Interleaved layout: [x,y,z, u,v, nx,ny,nz]
	stride := int32(8 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	model.VAO = vao
	model.VBO = vbo
	model.EBO = ebo

	// Resolve the material texture now that a GL context exists
	if model.Material != nil && model.Material.TextureID == 0 && model.Material.TexturePath != "" {
		textureID, err := rend.textures.LoadTexture(model.Material.TexturePath)
		if err != nil {
			logger.Log.Warn("Model texture not loaded",
				zap.String("path", model.Material.TexturePath), zap.Error(err))
		} else {
			model.Material.TextureID = textureID
		}
	}

	model.updateModelMatrix()

	rend.Models = append(rend.Models, model)
}

func (rend *OpenGLRenderer) RemoveModel(model *Model) {
	for i, m := range rend.Models {
		if m == model {
			rend.Models = append(rend.Models[:i], rend.Models[i+1:]...)
			break
		}
	}
}

func (rend *OpenGLRenderer) SetSkybox(skybox *Skybox) {
	rend.skybox = skybox
}

// Render draws one frame: clear, skybox first (it leaves depth testing
// enabled per its state-restore contract), then the lit models.
func (rend *OpenGLRenderer) Render(camera Camera, light *Light) {
	gl.ClearColor(ClearColorR, ClearColorG, ClearColorB, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if rend.skybox != nil {
		// Keep the cube centered on the viewer so it reads as infinitely far
		rend.skybox.SetPosition(camera.Position)
		rend.skybox.Render(camera.GetProjectionMatrix(), camera.GetViewMatrix())
		// The skybox switched programs and textures behind the change trackers
		rend.currentShaderProgram = 0
		currentTextureID = ^uint32(0)
	}

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	if FrustumCullingEnabled && frustumDirty {
		frustum = camera.CalculateFrustum()
		frustumDirty = false
	}

	viewProjection := camera.GetViewProjection()

	for _, model := range rend.Models {
		if FrustumCullingEnabled && !frustum.IntersectsSphere(model.BoundingSphereCenter, model.BoundingSphereRadius) {
			continue
		}

		if model.IsDirty {
			model.updateModelMatrix()
			model.IsDirty = false
		}

		shader := &rend.terrainShader
		if model.Shader.IsValid() {
			shader = &model.Shader
		}

		if rend.currentShaderProgram != shader.program {
			shader.Use()
			rend.currentShaderProgram = shader.program
		}

		shader.SetMat4("viewProjection", viewProjection)
		shader.SetMat4("model", model.ModelMatrix)

		if light != nil {
			shader.SetVec3("light.direction", light.Direction)
			shader.SetVec3("light.color", light.Color)
			shader.SetFloat("light.intensity", light.Intensity)
		}

		if model.Material != nil {
			diffuse := model.Material.DiffuseColor
			shader.SetVec3("diffuseColor", mgl32.Vec3{diffuse[0], diffuse[1], diffuse[2]})
			textureID := model.Material.TextureID
			if textureID == 0 {
				textureID = rend.defaultTextureID
			}
			if textureID != currentTextureID {
				gl.ActiveTexture(gl.TEXTURE0)
				gl.BindTexture(gl.TEXTURE_2D, textureID)
				currentTextureID = textureID
			}
		}
		shader.SetInt("textureSampler", 0)

		gl.BindVertexArray(model.VAO)
		gl.DrawElements(gl.TRIANGLES, int32(len(model.Faces)), gl.UNSIGNED_INT, nil)
		gl.BindVertexArray(0)
	}

	gl.Disable(gl.CULL_FACE)
}

func (rend *OpenGLRenderer) Cleanup() {
	for _, model := range rend.Models {
		gl.DeleteVertexArrays(1, &model.VAO)
		gl.DeleteBuffers(1, &model.VBO)
		gl.DeleteBuffers(1, &model.EBO)
	}
	if rend.skybox != nil {
		rend.skybox.Cleanup()
	}
	if rend.textures != nil {
		rend.textures.Clear()
	}
}

// GetTerrainShader returns a copy of the terrain shader for models that need it
func (rend *OpenGLRenderer) GetTerrainShader() Shader {
	return rend.terrainShader
}

// UpdateViewport updates the OpenGL viewport to match the current window size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}
