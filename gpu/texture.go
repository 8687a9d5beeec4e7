package gpu

import (
	"errors"
	"image"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// Texture is an RGBA8 2D texture with mipmaps and repeat wrapping.
type Texture struct {
	ctx    *Context
	handle uint32
	width  int
	height int
}

// NewTexture converts img to RGBA and uploads it. Rows are flipped so that
// texture coordinate (0,0) samples the bottom-left pixel of the image.
func NewTexture(ctx *Context, img image.Image) (*Texture, error) {
	if img == nil {
		return nil, errors.New("gpu: nil image")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, errors.New("gpu: image has no pixels")
	}

	pixels := FlipRGBA(toRGBA(img))

	drv := ctx.Driver()
	t := &Texture{
		ctx:    ctx,
		handle: drv.GenTexture(),
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}
	ctx.BindTexture(DiffuseUnit, t.handle)
	drv.TexImage2DRGBA(int32(t.width), int32(t.height), pixels)
	ctx.BindTexture(DiffuseUnit, 0)

	ctx.Logger().Debug("texture uploaded",
		zap.Uint32("texture", t.handle),
		zap.Int("width", t.width),
		zap.Int("height", t.height))
	return t, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FlipRGBA returns the pixel rows of img bottom row first.
func FlipRGBA(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	row := w * 4
	out := make([]byte, row*h)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+row]
		copy(out[(h-1-y)*row:], src)
	}
	return out
}

func (t *Texture) Handle() uint32 { return t.handle }
func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// Bind attaches the texture to a texture unit.
func (t *Texture) Bind(unit uint32) error {
	if t.handle == 0 {
		return ErrReleased
	}
	t.ctx.BindTexture(unit, t.handle)
	return nil
}

// Release deletes the texture. It is safe to call more than once.
func (t *Texture) Release() {
	if t.handle == 0 {
		return
	}
	t.ctx.Driver().DeleteTexture(t.handle)
	t.ctx.forgetTexture(t.handle)
	t.handle = 0
}
