package rondo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

// ErrUnsupportedFormat is returned when an export format cannot be resolved.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// jpegQuality is the quality used for lossy exports.
const jpegQuality = 95

// Format is an export file format.
type Format uint8

const (
	// FormatAuto picks the format from the destination file extension.
	FormatAuto Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatTIFF
	FormatBMP
	FormatPDF
)

var formatExts = map[string]Format{
	"png":  FormatPNG,
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"gif":  FormatGIF,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
	"bmp":  FormatBMP,
	"pdf":  FormatPDF,
}

var formatNames = [...]string{
	FormatAuto: "auto",
	FormatPNG:  "png",
	FormatJPEG: "jpg",
	FormatGIF:  "gif",
	FormatTIFF: "tiff",
	FormatBMP:  "bmp",
	FormatPDF:  "pdf",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", f)
}

// Ext returns the file extension of the format, including the dot.
func (f Format) Ext() string {
	if f == FormatAuto || int(f) >= len(formatNames) {
		return ""
	}
	return "." + formatNames[f]
}

// ParseFormat converts a format name or a file extension into a Format.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	if name == "auto" {
		return FormatAuto, nil
	}
	if f, ok := formatExts[name]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath resolves the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return FormatAuto, fmt.Errorf("%w: %s has no file extension", ErrUnsupportedFormat, path)
	}
	f, err := ParseFormat(ext)
	if err != nil || f == FormatAuto {
		return FormatAuto, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// Export writes the canvas, including the stroke in progress, to w.
// The session state is not modified.
func (s *PainterSession) Export(w io.Writer, format Format) error {
	if format == FormatAuto {
		return fmt.Errorf("%w: cannot guess the format of a stream", ErrUnsupportedFormat)
	}
	img := s.compose(false)
	if err := encodeImage(w, img, format); err != nil {
		return err
	}
	s.log().Info("canvas exported", "format", format)
	return nil
}

// ExportToFile writes the canvas to path. With FormatAuto the format follows
// the file extension. A partially written file is removed on failure.
func (s *PainterSession) ExportToFile(path string, format Format) (err error) {
	if format == FormatAuto {
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create the output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("could not close the output file: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return s.Export(f, format)
}

// encodeImage encodes img into w using the requested format.
func encodeImage(w io.Writer, img *image.NRGBA, format Format) error {
	var err error
	switch format {
	case FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case FormatJPEG:
		// JPEG has no alpha channel: flatten on white first.
		b := img.Bounds()
		flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Point{}, 1)
		err = imaging.Encode(w, flat, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case FormatGIF:
		err = imaging.Encode(w, img, imaging.GIF)
	case FormatTIFF:
		err = imaging.Encode(w, img, imaging.TIFF)
	case FormatBMP:
		err = imaging.Encode(w, img, imaging.BMP)
	case FormatPDF:
		err = encodePDF(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("could not encode the %v image: %w", format, err)
	}
	return nil
}

// encodePDF writes a single page document with the canvas as a lossless image,
// one point per pixel.
func encodePDF(w io.Writer, img *image.NRGBA) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return err
	}
	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opts, &buf)
	pdf.ImageOptions("canvas", 0, 0, wd, ht, false, opts, 0, "")

	return pdf.Output(w)
}
