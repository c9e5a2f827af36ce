package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCheckerTexture_Parity(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := NewCheckerColors(1.0, even, odd)

	tests := []struct {
		name  string
		point core.Vec3
		want  core.Vec3
	}{
		{"origin cell", core.NewVec3(0.5, 0.5, 0.5), even},
		{"one step x", core.NewVec3(1.5, 0.5, 0.5), odd},
		{"two steps", core.NewVec3(1.5, 1.5, 0.5), even},
		{"negative cell", core.NewVec3(-0.5, 0.5, 0.5), odd},
		{"negative two steps", core.NewVec3(-0.5, -0.5, 0.5), even},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Value(core.Vec2{}, tt.point); got != tt.want {
				t.Errorf("Value(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestCheckerTexture_NonPositiveScalePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for zero scale")
		}
	}()
	NewCheckerColors(0, core.Vec3{}, core.Vec3{})
}

func TestImageTexture_ClampsAndFlipsV(t *testing.T) {
	top := core.NewVec3(1, 0, 0)
	bottom := core.NewVec3(0, 0, 1)
	tex := NewImageTexture(1, 2, []core.Vec3{top, bottom})

	tests := []struct {
		name string
		uv   core.Vec2
		want core.Vec3
	}{
		{"v=1 is top row", core.NewVec2(0, 1), top},
		{"v=0 is bottom row", core.NewVec2(0, 0), bottom},
		{"v above range clamps to top", core.NewVec2(0.5, 3), top},
		{"v below range clamps to bottom", core.NewVec2(-2, -1), bottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Value(tt.uv, core.Vec3{}); got != tt.want {
				t.Errorf("Value(%v) = %v, want %v", tt.uv, got, tt.want)
			}
		})
	}
}

func TestImageTexture_MismatchedPixelsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for wrong pixel count")
		}
	}()
	NewImageTexture(2, 2, make([]core.Vec3, 3))
}

func TestNoiseTexture_InUnitRange(t *testing.T) {
	noise := NewNoiseTexture(core.NewSeededSampler(5), 4)
	sampler := core.NewSeededSampler(6)
	for i := 0; i < 500; i++ {
		p := core.RandomVec3(sampler, -10, 10)
		c := noise.Value(core.Vec2{}, p)
		if c[0] < 0 || c[0] > 1 || c[0] != c[1] || c[1] != c[2] {
			t.Fatalf("Noise value %v at %v is not a gray level in [0,1]", c, p)
		}
	}
}

func TestPerlin_DeterministicForSeed(t *testing.T) {
	a := NewPerlin(core.NewSeededSampler(11))
	b := NewPerlin(core.NewSeededSampler(11))
	p := core.NewVec3(1.3, -2.7, 0.4)
	if a.Noise(p) != b.Noise(p) {
		t.Error("Perlin noise differs for identical seeds")
	}
}

func TestProceduralTextures(t *testing.T) {
	uv := NewUVDebugTexture(16, 16)
	if got := uv.Value(core.NewVec2(1, 1), core.Vec3{}); got != core.NewVec3(1, 1, 0) {
		t.Errorf("UV debug at (1,1) = %v, want (1,1,0)", got)
	}

	grad := NewGradientTexture(4, 4, core.NewVec3(1, 1, 1), core.Vec3{})
	if got := grad.Value(core.NewVec2(0, 1), core.Vec3{}); got != core.NewVec3(1, 1, 1) {
		t.Errorf("Gradient top = %v, want white", got)
	}

	board := NewCheckerboardTexture(4, 4, 2, core.NewVec3(1, 1, 1), core.Vec3{})
	if got := board.Value(core.NewVec2(0, 1), core.Vec3{}); got != core.NewVec3(1, 1, 1) {
		t.Errorf("Checkerboard top-left = %v, want color1", got)
	}
}
