package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"
)

// Format selects an output encoding
type Format string

const (
	FormatPNG Format = "png"
	FormatPPM Format = "ppm" // Plain-text P3
)

// ParseFormat parses a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPNG, FormatPPM:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want png or ppm)", name)
}

// FormatForPath picks the format from a file extension, defaulting to PNG
func FormatForPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".ppm") {
		return FormatPPM
	}
	return FormatPNG
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("while encoding PNG: %w", err)
	}
	return nil
}

// WritePPM encodes img as plain-text PPM: a "P3" header followed by one
// "R G B" line per pixel, rows top to bottom.
func WritePPM(w io.Writer, img *image.RGBA) error {
	bw := bufio.NewWriter(w)
	bounds := img.Bounds()

	fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing PPM: %w", err)
	}
	return nil
}

// WriteImage encodes img in the given format
func WriteImage(w io.Writer, img *image.RGBA, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return WritePNG(w, img)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// SaveImage writes img to path, creating or truncating the file
func SaveImage(path string, img *image.RGBA, format Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating output file: %w", err)
	}

	if err := WriteImage(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("while saving %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("while closing %s: %w", path, err)
	}
	return nil
}
