package helper

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

/* =======================================================================
   Konversi foto upload → WebP (resize keep aspect, Lanczos)
======================================================================= */

type WebPOptions struct {
	MaxW    int
	MaxH    int
	Quality float32
}

var DefaultPhotoOptions = WebPOptions{MaxW: 1600, MaxH: 1600, Quality: 80}

const MaxUploadBytes = 8 << 20

func decodeImage(r io.Reader, ext string) (image.Image, error) {
	switch ext {
	case ".webp":
		return webp.Decode(r)
	case ".jpg", ".jpeg", ".png":
		// AutoOrientation: foto HP sering punya EXIF rotasi
		return imaging.Decode(r, imaging.AutoOrientation(true))
	default:
		return nil, fmt.Errorf("format tidak didukung: %s", ext)
	}
}

func ConvertToWebP(r io.Reader, ext string, opt WebPOptions) ([]byte, error) {
	img, err := decodeImage(r, strings.ToLower(ext))
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if (opt.MaxW > 0 && b.Dx() > opt.MaxW) || (opt.MaxH > 0 && b.Dy() > opt.MaxH) {
		img = imaging.Fit(img, opt.MaxW, opt.MaxH, imaging.Lanczos)
	}

	q := opt.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertUploadToWebP: buka file multipart, validasi ukuran & ekstensi, lalu konversi.
func ConvertUploadToWebP(fh *multipart.FileHeader, opt WebPOptions) ([]byte, error) {
	if fh.Size > MaxUploadBytes {
		return nil, fmt.Errorf("ukuran file melebihi %dMB", MaxUploadBytes>>20)
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file upload: %w", err)
	}
	defer src.Close()
	return ConvertToWebP(src, filepath.Ext(fh.Filename), opt)
}
