package analysis

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log"
	"strings"
	"testing"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// fixedQuantizer returns a fixed palette and remembers the image it was given.
type fixedQuantizer struct {
	palette color.Palette
	seen    image.Rectangle
	calls   int
}

func (q *fixedQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	q.calls++
	q.seen = m.Bounds()
	return append(p, q.palette...)
}

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// gradientImage returns an image with many distinct colors.
func gradientImage(width, height int) *imaging.PixelImage {
	img := imaging.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, x*255/width, y*255/height, (x+y)*255/(width+height))
		}
	}
	return img
}

func TestDominantColors_SolidBlack(t *testing.T) {
	img := solidImage(10, 10, RGB{0, 0, 0})

	colors, err := DominantColors(img, 5)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	hexes, err := ToHexList(colors)
	if err != nil {
		t.Fatalf("ToHexList failed: %v", err)
	}
	if len(hexes) != 1 || hexes[0] != "#000000" {
		t.Errorf("got %v, want [#000000]", hexes)
	}
}

func TestDominantColors_InvalidPaletteSize(t *testing.T) {
	img := solidImage(10, 10, RGB{0, 0, 0})

	for _, size := range []int{0, -3} {
		_, err := DominantColors(img, size)
		if !errors.Is(err, ErrInvalidPaletteSize) {
			t.Errorf("palette size %d: got %v, want ErrInvalidPaletteSize", size, err)
		}
	}
}

func TestDominantColors_ZeroArea(t *testing.T) {
	tests := []struct {
		name string
		img  *imaging.PixelImage
	}{
		{"0x10", imaging.New(10, 0)},
		{"10x0", imaging.New(0, 10)},
		{"0x0", imaging.New(0, 0)},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DominantColors(tt.img, 5)
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("got %v, want ErrInvalidImage", err)
			}
		})
	}
}

func TestDominantColors_PaletteSizeBound(t *testing.T) {
	img := gradientImage(240, 180)

	for _, size := range []int{1, 2, 5, 16} {
		colors, err := DominantColors(img, size)
		if err != nil {
			t.Fatalf("size %d: DominantColors failed: %v", size, err)
		}
		if len(colors) == 0 || len(colors) > size {
			t.Errorf("size %d: got %d colors", size, len(colors))
		}
		seen := make(map[RGB]bool)
		for _, c := range colors {
			if seen[c] {
				t.Errorf("size %d: color %v listed twice", size, c)
			}
			seen[c] = true
		}
	}
}

func TestDominantColors_FewColorsAreExact(t *testing.T) {
	// 3/4 red, 1/4 blue; fewer colors than the palette size.
	img := imaging.New(40, 40)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x < 10 {
				img.Set(x, y, 0, 0, 255)
			} else {
				img.Set(x, y, 255, 0, 0)
			}
		}
	}

	for _, name := range []string{QuantizerMedianCut, QuantizerKMeans, QuantizerWeighted, QuantizerProminent} {
		t.Run(name, func(t *testing.T) {
			q, err := QuantizerByName(name)
			if err != nil {
				t.Fatalf("QuantizerByName failed: %v", err)
			}
			got, err := DominantColors(img, 5, WithQuantizer(q))
			if err != nil {
				t.Fatalf("DominantColors failed: %v", err)
			}
			want := []RGB{{255, 0, 0}, {0, 0, 255}}
			if len(got) != len(want) {
				t.Fatalf("got %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("color %d: got %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestDominantColors_NamedQuantizersOnManyColors(t *testing.T) {
	img := gradientImage(300, 200)

	tests := []struct {
		name     string
		size     int
		wantMax  int
		dithered bool
	}{
		{"single", 1, 1, false},
		{"default", 5, 5, false},
		{"dithered", 5, 5, true},
		{"capped", 300, 256, false},
	}

	for _, name := range []string{QuantizerMedianCut, QuantizerKMeans, QuantizerWeighted, QuantizerProminent} {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				q, err := QuantizerByName(name)
				if err != nil {
					t.Fatalf("QuantizerByName failed: %v", err)
				}
				got, err := DominantColors(img, tt.size, WithQuantizer(q), WithDither(tt.dithered))
				if err != nil {
					t.Fatalf("DominantColors failed: %v", err)
				}
				if len(got) == 0 || len(got) > tt.wantMax {
					t.Fatalf("got %d colors, want 1-%d", len(got), tt.wantMax)
				}
				seen := make(map[RGB]bool)
				for _, c := range got {
					if seen[c] {
						t.Errorf("color %v listed twice", c)
					}
					seen[c] = true
				}
			})
		}
	}
}

// failingQuantizer reports a palette search failure.
type failingQuantizer struct {
	err error
}

func (q failingQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	return p
}

func (q failingQuantizer) QuantizeErr(p color.Palette, m image.Image) (color.Palette, error) {
	return p, q.err
}

func TestDominantColorCounts_QuantizerFailure(t *testing.T) {
	cause := errors.New("no convergence")
	img := gradientImage(20, 20)

	_, err := DominantColorCounts(img, 3, WithQuantizer(failingQuantizer{err: cause}))
	if err == nil {
		t.Fatal("a failing quantizer should be reported")
	}
	if !errors.Is(err, cause) {
		t.Errorf("error %v does not wrap the quantizer failure", err)
	}
	if strings.Contains(err.Error(), "empty palette") {
		t.Errorf("error %q hides the quantizer failure", err.Error())
	}

	_, err = Analyze(img, 3, WithQuantizer(failingQuantizer{err: cause}))
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StagePaletteQuantization || !errors.Is(err, cause) {
		t.Errorf("Analyze: got %v, want palette-quantization stage wrapping the failure", err)
	}
}

func TestNamedQuantizers_ReportFailures(t *testing.T) {
	for _, q := range []Quantizer{KMeansQuantizer{}, ProminentQuantizer{}} {
		if _, ok := q.(FallibleQuantizer); !ok {
			t.Errorf("%T should report search failures", q)
		}
	}
}

func TestDominantColorCounts_RanksByAssignment(t *testing.T) {
	// 5 blue, 3 red, 1 green pixels; white is in the palette but unused.
	img := mustArray(t, [][][]int{
		{{250, 5, 5}, {0, 0, 250}, {0, 0, 255}},
		{{0, 10, 240}, {255, 0, 0}, {0, 0, 255}},
		{{0, 240, 0}, {240, 10, 10}, {5, 5, 250}},
	})
	q := &fixedQuantizer{palette: color.Palette{red, green, blue, white}}

	counts, err := DominantColorCounts(img, 4, WithQuantizer(q))
	if err != nil {
		t.Fatalf("DominantColorCounts failed: %v", err)
	}

	want := []ColorCount{
		{Color: RGB{0, 0, 255}, Count: 5},
		{Color: RGB{255, 0, 0}, Count: 3},
		{Color: RGB{0, 255, 0}, Count: 1},
	}
	if len(counts) != len(want) {
		t.Fatalf("got %+v, want %+v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, counts[i], want[i])
		}
	}
	if q.calls != 1 {
		t.Errorf("quantizer calls: got %d, want 1", q.calls)
	}
}

func TestDominantColorCounts_TiesKeepPaletteOrder(t *testing.T) {
	img := mustArray(t, [][][]int{
		{{255, 0, 0}, {0, 0, 255}},
		{{0, 0, 255}, {255, 0, 0}},
	})
	q := &fixedQuantizer{palette: color.Palette{blue, red}}

	got, err := DominantColors(img, 2, WithQuantizer(q))
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(got) != 2 || got[0] != (RGB{0, 0, 255}) || got[1] != (RGB{255, 0, 0}) {
		t.Errorf("got %v, want blue then red", got)
	}
}

func TestDominantColorCounts_TruncatesOversizedPalette(t *testing.T) {
	img := mustArray(t, [][][]int{{{0, 255, 0}, {0, 255, 0}, {0, 0, 255}}})
	// A misbehaving quantizer that ignores capacity.
	q := &fixedQuantizer{palette: color.Palette{red, green, blue}}

	got, err := DominantColors(img, 2, WithQuantizer(q))
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(got) > 2 {
		t.Fatalf("got %d colors, want at most 2", len(got))
	}
	if got[0] != (RGB{0, 255, 0}) {
		t.Errorf("top color: got %v, want green", got[0])
	}
}

func TestDominantColorCounts_EmptyPalette(t *testing.T) {
	img := solidImage(3, 3, RGB{1, 1, 1})
	_, err := DominantColors(img, 3, WithQuantizer(&fixedQuantizer{}))
	if err == nil {
		t.Error("an empty palette should be reported as an error")
	}
}

func TestDominantColors_DownsamplesBeforeQuantizing(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxDim        int
		wantW, wantH  int
	}{
		{"landscape", 400, 200, 0, 100, 50},
		{"portrait", 150, 300, 0, 50, 100},
		{"small untouched", 60, 30, 0, 60, 30},
		{"custom bound", 400, 400, 25, 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &fixedQuantizer{palette: color.Palette{red}}
			img := gradientImage(tt.width, tt.height)

			for _, r := range []imaging.Resampler{imaging.BoxResampler{}, imaging.NearestResampler{}} {
				_, err := DominantColors(img, 3, WithQuantizer(q), WithResampler(r), WithMaxDimension(tt.maxDim))
				if err != nil {
					t.Fatalf("DominantColors failed: %v", err)
				}
				if q.seen.Dx() != tt.wantW || q.seen.Dy() != tt.wantH {
					t.Errorf("%T: quantizer saw %dx%d, want %dx%d", r, q.seen.Dx(), q.seen.Dy(), tt.wantW, tt.wantH)
				}
			}
		})
	}
}

func TestDominantColors_Dither(t *testing.T) {
	img := gradientImage(150, 150)

	colors, err := DominantColors(img, 4, WithDither(true))
	if err != nil {
		t.Fatalf("DominantColors with dithering failed: %v", err)
	}
	if len(colors) == 0 || len(colors) > 4 {
		t.Errorf("got %d colors, want 1..4", len(colors))
	}
}

func TestDominantColors_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	if _, err := DominantColors(gradientImage(300, 150), 3, WithLogger(logger)); err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if !strings.Contains(buf.String(), "downsampled 300x150 to 100x50") {
		t.Errorf("log output missing downsample trace: %q", buf.String())
	}
}

func TestDominantColors_Deterministic(t *testing.T) {
	img := gradientImage(200, 120)

	first, err := DominantColors(img, 5)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := DominantColors(img, 5)
		if err != nil {
			t.Fatalf("DominantColors failed: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: got %d colors, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Errorf("run %d color %d: got %v, want %v", i, j, again[j], first[j])
			}
		}
	}
}

func TestQuantizerByName_Unknown(t *testing.T) {
	if _, err := QuantizerByName("octree"); err == nil {
		t.Error("expected error for unknown quantizer")
	}
}
