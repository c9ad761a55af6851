package renderer

import (
	"math"
	"testing"
)

func testTerrainConfig() TerrainConfig {
	cfg := DefaultTerrainConfig()
	cfg.GridSize = 17
	return cfg
}

func TestGenerateTerrainCounts(t *testing.T) {
	cfg := testTerrainConfig()

	terrain, err := GenerateTerrain(cfg)
	if err != nil {
		t.Fatalf("GenerateTerrain failed: %v", err)
	}

	wantVertices := cfg.GridSize * cfg.GridSize
	if len(terrain.Vertices) != wantVertices*3 {
		t.Errorf("Expected %d vertex floats, got %d", wantVertices*3, len(terrain.Vertices))
	}
	if len(terrain.InterleavedData) != wantVertices*8 {
		t.Errorf("Expected %d interleaved floats, got %d", wantVertices*8, len(terrain.InterleavedData))
	}

	wantIndices := (cfg.GridSize - 1) * (cfg.GridSize - 1) * 6
	if len(terrain.Faces) != wantIndices {
		t.Errorf("Expected %d indices, got %d", wantIndices, len(terrain.Faces))
	}

	for i, face := range terrain.Faces {
		if face < 0 || int(face) >= wantVertices {
			t.Fatalf("Index %d out of range: %d", i, face)
		}
	}
}

func TestGenerateTerrainTooSmall(t *testing.T) {
	cfg := testTerrainConfig()
	cfg.GridSize = 1

	if _, err := GenerateTerrain(cfg); err == nil {
		t.Error("GenerateTerrain should reject grid size < 2")
	}
}

func TestTerrainHeightsDeterministic(t *testing.T) {
	cfg := testTerrainConfig()

	first := terrainHeights(cfg)
	second := terrainHeights(cfg)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Heights differ at %d for the same seed: %f vs %f", i, first[i], second[i])
		}
	}
}

func TestTerrainHeightsSeedVariation(t *testing.T) {
	cfg := testTerrainConfig()
	other := cfg
	other.Seed = cfg.Seed + 1

	first := terrainHeights(cfg)
	second := terrainHeights(other)

	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds should produce different height fields")
	}
}

func TestTerrainHeightsBounded(t *testing.T) {
	cfg := testTerrainConfig()

	// Octave sums can slightly exceed the nominal noise range, so allow
	// headroom; heights an order beyond the amplitude mean broken scaling
	limit := cfg.Amplitude * 2
	for i, h := range terrainHeights(cfg) {
		if h < -limit || h > limit {
			t.Errorf("Height %d is %f, outside ±%f", i, h, limit)
		}
	}
}

func TestTerrainNormalsNormalized(t *testing.T) {
	cfg := testTerrainConfig()

	terrain, err := GenerateTerrain(cfg)
	if err != nil {
		t.Fatalf("GenerateTerrain failed: %v", err)
	}

	for i := 0; i < len(terrain.Normals); i += 3 {
		length := math.Sqrt(float64(
			terrain.Normals[i]*terrain.Normals[i] +
				terrain.Normals[i+1]*terrain.Normals[i+1] +
				terrain.Normals[i+2]*terrain.Normals[i+2]))
		if math.Abs(length-1.0) > 0.01 {
			t.Fatalf("Normal %d has length %f, want 1", i/3, length)
		}
		if terrain.Normals[i+1] <= 0 {
			t.Fatalf("Normal %d points downward", i/3)
		}
	}
}
