package weblog

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/cesiha/weblog/storage"
)

const jpegQuality = 80

// handleUpload accepts a multipart image and stores it through the object
// store. The folder form value chooses between cover and in-content images;
// covers are downscaled before storage.
func (a *App) handleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no file provided"})
	}

	folder := c.FormValue("folder")
	if folder != "covers" {
		folder = "content"
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	f := storage.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Reader:      src,
	}

	// Covers are re-encoded as bounded JPEGs. Run the normalization only
	// after the type and size checks would pass, so a rejected file gets
	// the validation error rather than a decode error.
	if folder == "covers" && a.Config.CoverMaxWidth > 0 &&
		strings.HasPrefix(f.ContentType, "image/") && f.Size <= storage.MaxUploadSize {
		nf, err := normalizeCover(f, a.Config.CoverMaxWidth)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid image: " + err.Error()})
		}
		f = nf
	}

	url, err := a.uploader.Upload(c.Request().Context(), folder, f)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) || errors.Is(err, storage.ErrTooLarge) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// normalizeCover decodes an image, downscales it to maxWidth if wider, and
// re-encodes it as JPEG.
func normalizeCover(f storage.File, maxWidth int) (storage.File, error) {
	img, _, err := image.Decode(f.Reader)
	if err != nil {
		return storage.File{}, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxWidth {
		newH := h * maxWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return storage.File{}, err
	}

	name := f.Name
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return storage.File{
		Name:        name + ".jpg",
		ContentType: "image/jpeg",
		Size:        int64(buf.Len()),
		Reader:      &buf,
	}, nil
}
