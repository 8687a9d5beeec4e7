// Package assets bundles the GLSL sources and provides image loading plus a
// few procedural textures for when no image files are configured.
package assets

import (
	"embed"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Shader source names inside Shaders().
const (
	BasicVertex      = "basic.vert"
	BasicFragment    = "basic.frag"
	LitVertex        = "lit.vert"
	LitFragment      = "lit.frag"
	TexturedVertex   = "textured.vert"
	TexturedFragment = "textured.frag"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFiles embed.FS

// Shaders returns the built-in shader sources.
func Shaders() fs.FS {
	sub, err := fs.Sub(shaderFiles, "shaders")
	if err != nil {
		panic(err) // the embedded directory always exists
	}
	return sub
}

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// Checkerboard returns a size×size image of cells×cells alternating squares.
func Checkerboard(size, cells int, a, b color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if cells <= 0 {
		cells = 1
	}
	cell := size / cells
	if cell == 0 {
		cell = 1
	}
	for y := 0; y < size; y += cell {
		for x := 0; x < size; x += cell {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			draw.Draw(img, image.Rect(x, y, x+cell, y+cell), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	return img
}

// FrameMap returns a specular map: a bright border of the given width around
// a black centre, the way a metal-framed crate reflects.
func FrameMap(size, border int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	inner := image.Rect(border, border, size-border, size-border)
	if !inner.Empty() {
		draw.Draw(img, inner, image.NewUniform(color.Black), image.Point{}, draw.Src)
	}
	return img
}
