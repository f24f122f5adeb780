package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

// savePNG encodes the image fully in memory before touching the
// filesystem, so an encoding failure never leaves a truncated file.
// The output directory must already exist.
func savePNG(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: output directory %s does not exist", domain.ErrOutput, dir)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%w: encode png: %v", domain.ErrOutput, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutput, err)
	}
	return nil
}
