package icon

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestDrawSize(t *testing.T) {
	for _, size := range []int{16, 64, 256} {
		img := Draw(size)
		if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
			t.Errorf("Draw(%d) bounds = %v", size, b)
		}
	}
}

func TestDrawRegions(t *testing.T) {
	img := Draw(64)

	if c := img.RGBAAt(0, 0); c.A != 0 {
		t.Errorf("corner should be transparent, got %v", c)
	}
	if c := img.RGBAAt(32, 4); c != Background {
		t.Errorf("top edge = %v, want background", c)
	}
	// Lower half of the envelope, below the flap.
	if c := img.RGBAAt(32, 42); c != Paper {
		t.Errorf("envelope body = %v, want paper", c)
	}
}

func TestDrawHasFold(t *testing.T) {
	img := Draw(128)
	found := false
	for y := 0; y < 128 && !found; y++ {
		for x := 0; x < 128; x++ {
			if img.RGBAAt(x, y) == Fold {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no flap pixels drawn")
	}
}

func TestPNGDecodes(t *testing.T) {
	data, err := PNG(32)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Errorf("decoded width = %d", img.Bounds().Dx())
	}
	r, g, b, a := img.At(16, 2).RGBA()
	want := color.RGBAModel.Convert(Background).(color.RGBA)
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B || uint8(a>>8) != 0xFF {
		t.Errorf("pixel (16,2) = %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}
}
