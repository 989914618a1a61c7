package game

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10" viewBox="0 0 10 10">
<rect x="0" y="0" width="10" height="10" fill="#ff0000"/>
</svg>`

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadEmbeddedAssets(t *testing.T) {
	assets, err := LoadAssets(context.Background(), AssetFS(""), DefaultConfig().AssetPaths())
	if err != nil {
		t.Fatalf("LoadAssets: %v", err)
	}
	if got := assets.Background.Bounds(); got.Dx() != 64 || got.Dy() != 64 {
		t.Errorf("background bounds = %v, want 64x64", got)
	}
	if got := assets.Bullet.Bounds(); got.Dx() != 8 || got.Dy() != 8 {
		t.Errorf("bullet bounds = %v, want 8x8", got)
	}
}

func TestLoadAssetsDecodesByExtension(t *testing.T) {
	fsys := fstest.MapFS{
		"bg.png":     {Data: encodePNG(t, 32, 16)},
		"bullet.svg": {Data: []byte(testSVG)},
	}
	paths := AssetPaths{Background: "bg.png", Bullet: "bullet.svg", BackgroundSize: 64, BulletSize: 20}

	assets, err := LoadAssets(context.Background(), fsys, paths)
	if err != nil {
		t.Fatalf("LoadAssets: %v", err)
	}
	// PNGs keep their own size, SVGs are rasterized to the requested one
	if got := assets.Background.Bounds(); got.Dx() != 32 || got.Dy() != 16 {
		t.Errorf("png bounds = %v, want 32x16", got)
	}
	if got := assets.Bullet.Bounds(); got.Dx() != 20 || got.Dy() != 20 {
		t.Errorf("svg bounds = %v, want 20x20", got)
	}
	r, g, b, a := assets.Bullet.At(10, 10).RGBA()
	if r == 0 || g != 0 || b != 0 || a == 0 {
		t.Errorf("svg center pixel = %v,%v,%v,%v, want opaque red", r, g, b, a)
	}
}

func TestLoadAssetsFailsWhenEitherImageFails(t *testing.T) {
	good := fstest.MapFS{
		"bg.svg":     {Data: []byte(testSVG)},
		"bullet.svg": {Data: []byte(testSVG)},
	}
	tests := []struct {
		name   string
		remove string
	}{
		{name: "missing background", remove: "bg.svg"},
		{name: "missing bullet", remove: "bullet.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			for k, v := range good {
				fsys[k] = v
			}
			delete(fsys, tt.remove)
			paths := AssetPaths{Background: "bg.svg", Bullet: "bullet.svg", BackgroundSize: 8, BulletSize: 8}

			assets, err := LoadAssets(context.Background(), fsys, paths)
			if !errors.Is(err, ErrAssetLoad) {
				t.Fatalf("err = %v, want ErrAssetLoad", err)
			}
			if assets != nil {
				t.Fatalf("got partial assets %+v", assets)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("err = %v, want it to wrap fs.ErrNotExist", err)
			}
		})
	}
}

func TestLoadAssetsUndecodableImage(t *testing.T) {
	fsys := fstest.MapFS{
		"bg.png":     {Data: []byte("not an image")},
		"bullet.svg": {Data: []byte(testSVG)},
	}
	paths := AssetPaths{Background: "bg.png", Bullet: "bullet.svg", BackgroundSize: 8, BulletSize: 8}
	_, err := LoadAssets(context.Background(), fsys, paths)
	if !errors.Is(err, ErrAssetLoad) || !errors.Is(err, image.ErrFormat) {
		t.Fatalf("err = %v, want ErrAssetLoad wrapping image.ErrFormat", err)
	}
}

func TestLoadAssetsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadAssets(ctx, AssetFS(""), DefaultConfig().AssetPaths())
	if !errors.Is(err, ErrAssetLoad) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want ErrAssetLoad wrapping context.Canceled", err)
	}
}

func TestRasterizeSVGRejectsBadSize(t *testing.T) {
	if _, err := rasterizeSVG([]byte(testSVG), 0); err == nil {
		t.Fatal("expected an error for size 0")
	}
}
