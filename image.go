package rondo

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/rondo/utils"

	_ "golang.org/x/image/webp"
)

// decodeBrush decodes the brush image stored at src.
func decodeBrush(src string) (image.Image, error) {
	ctype, err := utils.DetectContentType(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the brush file: %w", err)
	}
	// TIFF is not sniffed by the content detection and reads as a binary
	// stream; leave it to the decoder.
	if !strings.Contains(ctype, "image") && ctype != "application/octet-stream" {
		return nil, fmt.Errorf("the brush should be an image file, got %s", ctype)
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the brush file: %w", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode the brush file: %w", err)
	}
	return img, nil
}

// imgToNRGBA converts any image type to a new *image.NRGBA with min-point at
// (0, 0). The result never shares pixels with img.
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	case *image.Gray:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				v := src.Pix[si+dstX]
				dst.Pix[di+0] = v
				dst.Pix[di+1] = v
				dst.Pix[di+2] = v
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}
