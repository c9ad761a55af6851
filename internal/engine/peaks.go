package engine

import (
	"PeaksAndValleys/internal/logger"
	"PeaksAndValleys/internal/renderer"
	"runtime"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Initialize to the center of the window
var lastX, lastY float64
var firstMouse bool = true

// Peaks hosts the window, the camera, and the render loop. All components
// share one GL context; frame order is the only ordering guarantee between
// them.
type Peaks struct {
	Width             int32
	Height            int32
	Light             *renderer.Light
	Camera            *renderer.Camera
	EnableCameraInput bool // Control whether camera processes keyboard/mouse input

	rendererAPI      renderer.Render
	window           *glfw.Window
	skybox           *renderer.Skybox
	skyboxPath       string // Store path until OpenGL is ready
	pendingModels    []*renderer.Model
	onRenderCallback func(deltaTime float64) // Optional per-frame callback
}

func NewPeaks() *Peaks {
	logger.Init()
	logger.Log.Info("PeaksAndValleys initializing...")
	return &Peaks{
		rendererAPI:       &renderer.OpenGLRenderer{},
		Width:             1024,
		Height:            768,
		EnableCameraInput: true,
	}
}

// Run opens the window at the given position, initializes OpenGL, and enters
// the render loop. It must be called from the main goroutine.
func (p *Peaks) Run(x, y int) error {
	lastX, lastY = float64(p.Width/2), float64(p.Height/2)
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(p.Width), int(p.Height), "PeaksAndValleys", nil, nil)
	if err != nil {
		return err
	}
	p.window = window
	p.window.MakeContextCurrent()
	p.window.SetPos(x, y)

	if err := p.rendererAPI.Init(p.Width, p.Height, p.window); err != nil {
		return err
	}

	p.Camera = renderer.NewDefaultCamera(p.Height, p.Width)

	// A skybox requested before GL was ready is created now. Failure skips
	// the skybox rather than aborting the demo; the clear color remains the
	// fallback background.
	if p.skyboxPath != "" {
		skybox, err := renderer.CreateSkybox(p.skyboxPath)
		if err != nil {
			logger.Log.Error("Failed to create skybox, rendering without one",
				zap.String("path", p.skyboxPath), zap.Error(err))
		} else {
			p.skybox = skybox
			p.rendererAPI.SetSkybox(skybox)
			logger.Log.Info("Skybox created and set", zap.String("path", p.skyboxPath))
		}
	}

	for _, model := range p.pendingModels {
		p.rendererAPI.AddModel(model)
	}
	p.pendingModels = nil

	p.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	p.window.SetCursorPosCallback(p.mouseCallback)

	p.renderLoop()
	return nil
}

func (p *Peaks) renderLoop() {
	var lastTime = glfw.GetTime()
	var lastWidth, lastHeight int32 = p.Width, p.Height

	for !p.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		actualWidth, actualHeight := p.window.GetSize()
		if int32(actualWidth) != p.Width || int32(actualHeight) != p.Height {
			p.Width = int32(actualWidth)
			p.Height = int32(actualHeight)
		}

		if p.Width != lastWidth || p.Height != lastHeight {
			p.rendererAPI.UpdateViewport(p.Width, p.Height)
			p.Camera.SetAspectRatio(float32(p.Width) / float32(p.Height))
			lastWidth, lastHeight = p.Width, p.Height
		}

		if p.EnableCameraInput {
			p.Camera.ProcessKeyboard(p.window, float32(deltaTime))
		}

		p.rendererAPI.Render(*p.Camera, p.Light)

		if p.onRenderCallback != nil {
			p.onRenderCallback(deltaTime)
		}

		p.window.SwapBuffers()
		glfw.PollEvents()
	}
	p.rendererAPI.Cleanup()
}

// SetSkybox requests a skybox with the given atlas image. The skybox itself
// is created once the GL context exists.
func (p *Peaks) SetSkybox(atlasPath string) {
	p.skyboxPath = atlasPath
}

// SetOnRenderCallback sets a callback invoked each frame after the scene is rendered
func (p *Peaks) SetOnRenderCallback(callback func(deltaTime float64)) {
	p.onRenderCallback = callback
}

func (p *Peaks) SetDebugMode(debug bool) {
	renderer.Debug = debug
}

func (p *Peaks) SetFrustumCulling(enabled bool) {
	renderer.FrustumCullingEnabled = enabled
}

func (p *Peaks) SetFaceCulling(enabled bool) {
	renderer.FaceCullingEnabled = enabled
}

// AddModel queues a model before Run and adds it directly afterwards.
func (p *Peaks) AddModel(model *renderer.Model) {
	if p.window == nil {
		p.pendingModels = append(p.pendingModels, model)
		return
	}
	p.rendererAPI.AddModel(model)
}

func (p *Peaks) RemoveModel(model *renderer.Model) {
	p.rendererAPI.RemoveModel(model)
}

func (p *Peaks) GetMousePosition() mgl.Vec2 {
	x, y := p.window.GetCursorPos()
	return mgl.Vec2{float32(x), float32(y)}
}

func (p *Peaks) IsMouseButtonPressed(button glfw.MouseButton) bool {
	return p.window.GetMouseButton(button) == glfw.Press
}

// GetWindow returns the GLFW window (for advanced use)
func (p *Peaks) GetWindow() *glfw.Window {
	return p.window
}

// GetRenderer returns the renderer API (for advanced use)
func (p *Peaks) GetRenderer() renderer.Render {
	return p.rendererAPI
}

// Mouse callback function
func (p *Peaks) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	// Look around only while the right mouse button is held on a focused window
	if p.EnableCameraInput && w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		if firstMouse {
			lastX = xpos
			lastY = ypos
			firstMouse = false
			return
		}

		xoffset := xpos - lastX
		yoffset := lastY - ypos // Reversed since y-coordinates go from bottom to top
		lastX = xpos
		lastY = ypos

		p.Camera.ProcessMouseMovement(float32(xoffset), float32(yoffset), true)
	} else {
		firstMouse = true
	}
}
