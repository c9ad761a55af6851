package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
	isCompiled     bool
}

// Compile compiles and links the shader pair. Failures surface the GL info
// log in the returned error instead of leaving the program half-built.
func (shader *Shader) Compile() error {
	vertex, err := compileShaderStage(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	fragment, err := compileShaderStage(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return err
	}
	program, err := linkShaderProgram(vertex, fragment)
	if err != nil {
		return err
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	return nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) IsValid() bool {
	return shader.isCompiled && shader.program != 0
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value.X(), value.Y(), value.Z())
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

var skyboxVertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition; // Vertex position
layout(location = 1) in vec2 inTexCoord; // Atlas coordinate

uniform mat4 projection;
uniform mat4 modelView;

out vec2 fragTexCoord;

void main() {
    fragTexCoord = inTexCoord;
    gl_Position = projection * modelView * vec4(inPosition, 1.0);
}
` + "\x00"

var skyboxFragmentShaderSource = `#version 330 core

in vec2 fragTexCoord;

uniform sampler2D textureSampler;

out vec4 FragColor;

void main() {
    FragColor = texture(textureSampler, fragTexCoord);
}
` + "\x00"

var terrainVertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition; // Vertex position
layout(location = 1) in vec2 inTexCoord; // Texture Coordinate
layout(location = 2) in vec3 inNormal;   // Vertex normal

uniform mat4 model;
uniform mat4 viewProjection;

out vec2 fragTexCoord;
out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = vec3(model * vec4(inPosition, 1.0));
    Normal = mat3(model) * inNormal; // Valid while the model matrix has no non-uniform scaling
    fragTexCoord = inTexCoord;

    gl_Position = viewProjection * model * vec4(inPosition, 1.0);
}
` + "\x00"

var terrainFragmentShaderSource = `#version 330 core

in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform sampler2D textureSampler;
uniform struct Light {
    vec3 direction;
    vec3 color;
    float intensity;
} light;
uniform vec3 diffuseColor;

out vec4 FragColor;

void main() {
    vec4 texColor = texture(textureSampler, fragTexCoord);

    float ambientStrength = 0.15;
    vec3 ambient = ambientStrength * light.color * diffuseColor;

    vec3 norm = normalize(Normal);
    vec3 lightDir = normalize(-light.direction);
    float diff = max(dot(norm, lightDir), 0.0);
    vec3 diffuse = diff * light.color * diffuseColor;

    vec3 result = (ambient + diffuse) * light.intensity;
    FragColor = vec4(result, 1.0) * texColor;
}
` + "\x00"

func InitSkyboxShader() Shader {
	return Shader{
		vertexSource:   skyboxVertexShaderSource,
		fragmentSource: skyboxFragmentShaderSource,
	}
}

func InitTerrainShader() Shader {
	return Shader{
		vertexSource:   terrainVertexShaderSource,
		fragmentSource: terrainFragmentShaderSource,
	}
}

func compileShaderStage(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		kind := "vertex"
		if shaderType == gl.FRAGMENT_SHADER {
			kind = "fragment"
		}
		return 0, fmt.Errorf("failed to compile %s shader: %s", kind, strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}

func linkShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link shader program: %s", strings.TrimRight(log, "\x00"))
	}

	return program, nil
}
