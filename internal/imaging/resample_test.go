package imaging

import (
	"image/color"
	"testing"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"already fits", 80, 60, 80, 60},
		{"exact bound", 100, 100, 100, 100},
		{"landscape", 400, 200, 100, 50},
		{"portrait", 300, 600, 50, 100},
		{"square", 1000, 1000, 100, 100},
		{"thin strip keeps one pixel", 5000, 2, 100, 1},
		{"tall strip keeps one pixel", 1, 3000, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.width, tt.height, 100)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitSize(%d,%d): got %dx%d, want %dx%d", tt.width, tt.height, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResamplers_Bound(t *testing.T) {
	resamplers := map[string]Resampler{
		ResamplerBox:     BoxResampler{},
		ResamplerNearest: NearestResampler{},
	}
	sizes := []struct{ w, h int }{
		{400, 200},
		{150, 900},
		{101, 101},
		{30, 20},
	}

	for name, r := range resamplers {
		for _, s := range sizes {
			src := FromImage(createPatternImage(s.w, s.h))
			out := r.Downsample(src, DefaultMaxDimension)
			b := out.Bounds()
			if b.Dx() > DefaultMaxDimension || b.Dy() > DefaultMaxDimension {
				t.Errorf("%s %dx%d: output %dx%d exceeds bound", name, s.w, s.h, b.Dx(), b.Dy())
			}
			if b.Dx() == 0 || b.Dy() == 0 {
				t.Errorf("%s %dx%d: output has zero area", name, s.w, s.h)
			}
			if s.w <= DefaultMaxDimension && s.h <= DefaultMaxDimension && (b.Dx() != s.w || b.Dy() != s.h) {
				t.Errorf("%s %dx%d: small image resized to %dx%d", name, s.w, s.h, b.Dx(), b.Dy())
			}
		}
	}
}

func TestResamplers_DoNotModifySource(t *testing.T) {
	src := FromImage(createPatternImage(300, 300))
	before := append([]int(nil), src.Pix...)

	BoxResampler{}.Downsample(src, 100)
	NearestResampler{}.Downsample(src, 100)

	for i := range before {
		if src.Pix[i] != before[i] {
			t.Fatalf("source modified at index %d", i)
		}
	}
}

func TestNearestResampler_KeepsSourceColors(t *testing.T) {
	src := FromImage(createPatternImage(400, 400))
	out := NearestResampler{}.Downsample(src, 100)

	allowed := map[color.RGBA]bool{
		{255, 0, 0, 255}:     true,
		{0, 255, 0, 255}:     true,
		{0, 0, 255, 255}:     true,
		{255, 255, 255, 255}: true,
	}
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(out.At(x, y)).(color.RGBA)
			if !allowed[c] {
				t.Fatalf("pixel (%d,%d) has color %v not present in source", x, y, c)
			}
		}
	}
}

func TestResamplerByName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"box", false},
		{"nearest", false},
		{"lanczos", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResamplerByName(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for unknown resampler")
				}
				return
			}
			if err != nil || r == nil {
				t.Errorf("ResamplerByName(%q): got (%v, %v)", tt.name, r, err)
			}
		})
	}
}
