package renderer

import (
	"PeaksAndValleys/internal/logger"
	"errors"

	perlin "github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// TerrainConfig drives procedural terrain generation.
type TerrainConfig struct {
	GridSize  int     // Vertices per side
	Spacing   float32 // World units between grid vertices
	Amplitude float32 // Peak-to-valley height scale
	Frequency float64 // Noise frequency; lower is smoother
	Octaves   int     // Fractal noise layers
	Seed      int64
}

// DefaultTerrainConfig returns rolling peaks-and-valleys terrain that reads
// well from the default camera.
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		GridSize:  129,
		Spacing:   8.0,
		Amplitude: 60.0,
		Frequency: 0.015,
		Octaves:   4,
		Seed:      1,
	}
}

// terrainHeights samples fractal Perlin noise over the grid. Heights are
// deterministic for a given config.
func terrainHeights(cfg TerrainConfig) []float32 {
	noise := perlin.NewPerlin(2, 2, int32(cfg.Octaves), cfg.Seed)
	heights := make([]float32, cfg.GridSize*cfg.GridSize)
	for x := 0; x < cfg.GridSize; x++ {
		for z := 0; z < cfg.GridSize; z++ {
			n := noise.Noise2D(float64(x)*cfg.Frequency, float64(z)*cfg.Frequency)
			heights[x*cfg.GridSize+z] = float32(n) * cfg.Amplitude
		}
	}
	return heights
}

// terrainNormal estimates the surface normal at a grid cell by central
// differences over the height field.
func terrainNormal(heights []float32, gridSize int, x, z int, spacing float32) mgl32.Vec3 {
	sample := func(x, z int) float32 {
		if x < 0 {
			x = 0
		}
		if x >= gridSize {
			x = gridSize - 1
		}
		if z < 0 {
			z = 0
		}
		if z >= gridSize {
			z = gridSize - 1
		}
		return heights[x*gridSize+z]
	}

	dx := sample(x+1, z) - sample(x-1, z)
	dz := sample(x, z+1) - sample(x, z-1)
	return mgl32.Vec3{-dx, 2 * spacing, -dz}.Normalize()
}

// GenerateTerrain builds a heightfield grid model: positions displaced by
// Perlin noise, per-vertex normals, and tiling texture coordinates, packed
// as interleaved [x,y,z,u,v,nx,ny,nz] data.
func GenerateTerrain(cfg TerrainConfig) (*Model, error) {
	if cfg.GridSize < 2 {
		return nil, errors.New("terrain grid size must be at least 2")
	}

	gridSize := cfg.GridSize
	heights := terrainHeights(cfg)

	vertices := make([]float32, 0, gridSize*gridSize*3)
	textureCoords := make([]float32, 0, gridSize*gridSize*2)
	normals := make([]float32, 0, gridSize*gridSize*3)
	interleaved := make([]float32, 0, gridSize*gridSize*8)

	// Center the grid so the terrain spreads around the origin
	half := float32(gridSize-1) * cfg.Spacing * 0.5

	for x := 0; x < gridSize; x++ {
		for z := 0; z < gridSize; z++ {
			px := float32(x)*cfg.Spacing - half
			py := heights[x*gridSize+z]
			pz := float32(z)*cfg.Spacing - half

			u := float32(x) / float32(gridSize-1)
			v := float32(z) / float32(gridSize-1)

			normal := terrainNormal(heights, gridSize, x, z, cfg.Spacing)

			vertices = append(vertices, px, py, pz)
			textureCoords = append(textureCoords, u, v)
			normals = append(normals, normal.X(), normal.Y(), normal.Z())
			interleaved = append(interleaved, px, py, pz, u, v, normal.X(), normal.Y(), normal.Z())
		}
	}

	faces := make([]int32, 0, (gridSize-1)*(gridSize-1)*6)
	for x := 0; x < gridSize-1; x++ {
		for z := 0; z < gridSize-1; z++ {
			topLeft := int32(x*gridSize + z)
			topRight := topLeft + 1
			bottomLeft := int32((x+1)*gridSize + z)
			bottomRight := bottomLeft + 1

			faces = append(faces, topLeft, bottomLeft, bottomRight, topLeft, bottomRight, topRight)
		}
	}

	model := &Model{
		Name:            "terrain",
		Position:        mgl32.Vec3{0, 0, 0},
		Scale:           mgl32.Vec3{1, 1, 1},
		Rotation:        mgl32.QuatIdent(),
		Material:        DefaultMaterial,
		Vertices:        vertices,
		TextureCoords:   textureCoords,
		Normals:         normals,
		Faces:           faces,
		InterleavedData: interleaved,
	}
	model.ensureMaterial()
	model.updateModelMatrix()

	logger.Log.Info("Terrain generated",
		zap.Int("vertices", gridSize*gridSize),
		zap.Int("triangles", len(faces)/3),
		zap.Int64("seed", cfg.Seed))

	return model, nil
}
