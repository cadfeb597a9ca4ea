// internal/infra/images/images.go
package images

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	_ "image/gif"
	_ "image/png"
)

var (
	imageFileRe = regexp.MustCompile(`(?i)\.(jpe?g|png|webp|gif|avif|svg)$`)
	heroNameRe  = regexp.MustCompile(`(?i)(^|[-_.])(hero|main|cover|primary)`)
)

// IsImageFile reports whether a file name looks like a product image.
func IsImageFile(name string) bool {
	return imageFileRe.MatchString(name)
}

// ListImages returns the image file names in dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsImageFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Manifest orders a product's images. Main is the hero image file name;
// Demos are up to four secondary images. Merchants may edit it by hand.
type Manifest struct {
	Main   string   `json:"main,omitempty"`
	Demos  []string `json:"demos,omitempty"`
	Images []string `json:"images"`
}

// ReadManifest loads manifest.json from dir. Missing or invalid manifests
// return an error; callers treat that as "no manifest".
func ReadManifest(dir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GenerateManifest builds a manifest from the files in dir: images sorted by
// name, main preferring hero/main/cover/primary-looking names, and up to
// four demos excluding main.
func GenerateManifest(dir string) (*Manifest, error) {
	names, err := ListImages(dir)
	if err != nil {
		return nil, err
	}
	m := &Manifest{Images: names}
	if len(names) == 0 {
		return m, nil
	}

	m.Main = names[0]
	for _, n := range names {
		if heroNameRe.MatchString(n) {
			m.Main = n
			break
		}
	}

	for _, n := range names {
		if n == m.Main {
			continue
		}
		m.Demos = append(m.Demos, n)
		if len(m.Demos) == 4 {
			break
		}
	}
	return m, nil
}

// WriteManifest writes manifest.json into dir.
func WriteManifest(dir string, m *Manifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "manifest.json"), b, 0644)
}

// blurMaxDim bounds the placeholder's longest side.
const blurMaxDim = 16

// BlurDataURL decodes an image file, downscales it to a tiny thumbnail and
// returns it as a base64 JPEG data URL. Formats the stdlib cannot decode
// (webp, avif, svg) return an error; callers fall back to an empty
// placeholder.
func BlurDataURL(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	thumb := downscale(src, blurMaxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 40}); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// downscale is a nearest-neighbor resize; placeholder quality does not
// warrant an interpolating dependency.
func downscale(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	ow, oh := maxDim, maxDim
	if w > h {
		oh = h * maxDim / w
	} else {
		ow = w * maxDim / h
	}
	if ow < 1 {
		ow = 1
	}
	if oh < 1 {
		oh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, ow, oh))
	for y := 0; y < oh; y++ {
		sy := b.Min.Y + y*h/oh
		for x := 0; x < ow; x++ {
			sx := b.Min.X + x*w/ow
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}
