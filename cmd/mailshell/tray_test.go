package main

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestPngToICO(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	ico := pngToICO(png)

	if len(ico) != 22+len(png) {
		t.Fatalf("len = %d, want %d", len(ico), 22+len(png))
	}
	if typ := binary.LittleEndian.Uint16(ico[2:4]); typ != 1 {
		t.Errorf("type = %d, want 1", typ)
	}
	if size := binary.LittleEndian.Uint32(ico[14:18]); size != uint32(len(png)) {
		t.Errorf("image size = %d", size)
	}
	if off := binary.LittleEndian.Uint32(ico[18:22]); off != 22 {
		t.Errorf("offset = %d, want 22", off)
	}
	if !bytes.Equal(ico[22:], png) {
		t.Error("png payload not copied")
	}
}

func TestTrayTooltip(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "Fastmail"},
		{1, "Fastmail: 1 unread message"},
		{7, "Fastmail: 7 unread messages"},
	}
	for _, tt := range tests {
		if got := trayTooltip(tt.n); got != tt.want {
			t.Errorf("trayTooltip(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
