package game

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

//go:embed sprites/*.svg
var embeddedSprites embed.FS

// ErrAssetLoad is returned when any sprite cannot be read or decoded
var ErrAssetLoad = errors.New("asset load failed")

// Assets is the immutable sprite bundle shared by every render call
type Assets struct {
	Background image.Image
	Bullet     image.Image
}

// AssetPaths locates the sprites inside an asset file system
type AssetPaths struct {
	Background string
	Bullet     string

	// Rasterization sizes for SVG sprites
	BackgroundSize int
	BulletSize     int
}

// AssetFS returns the file system sprites are loaded from: dir on disk if
// set, the embedded sprites otherwise.
func AssetFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	return embeddedSprites
}

// LoadAssets loads and decodes both sprites concurrently. Either both
// images are returned or an error wrapping ErrAssetLoad.
func LoadAssets(ctx context.Context, fsys fs.FS, paths AssetPaths) (*Assets, error) {
	var assets Assets
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := loadImage(ctx, fsys, paths.Background, paths.BackgroundSize)
		if err != nil {
			return err
		}
		assets.Background = img
		return nil
	})
	g.Go(func() error {
		img, err := loadImage(ctx, fsys, paths.Bullet, paths.BulletSize)
		if err != nil {
			return err
		}
		assets.Bullet = img
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &assets, nil
}

// loadImage reads one sprite and decodes it by extension
func loadImage(ctx context.Context, fsys fs.FS, name string, size int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, name, err)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, name, err)
	}

	var img image.Image
	if strings.EqualFold(path.Ext(name), ".svg") {
		img, err = rasterizeSVG(data, size)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, name, err)
	}
	return img, nil
}

// rasterizeSVG renders SVG data into a size x size RGBA image
func rasterizeSVG(data []byte, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid raster size %d", size)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
