// Package assets loads the game's sprites from disk and falls back to
// procedural placeholders for anything missing or unreadable.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	// Decoders registered with image.Decode.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Vision-Hero/internal/raster"
)

// extensions are tried in order for every sprite name.
var extensions = []string{".png", ".webp", ".bmp", ".jpg", ".jpeg"}

// enemyNames are the enemy sprite variants looked up in the assets directory.
var enemyNames = []string{"enemy", "enemy1", "enemy2", "enemy3"}

// ErrNotFound means no file with a supported extension exists for a name.
var ErrNotFound = errors.New("assets: not found")

// Set is the sprite set for one session. Sprites are stored at their native
// resolution except the background, which is scaled to the field.
type Set struct {
	Background *image.RGBA
	Farmer     *image.RGBA
	Crop       *image.RGBA
	Enemies    []*image.RGBA

	// Fallbacks lists the sprites that were replaced by placeholders.
	Fallbacks []string
}

// Load reads sprites from dir. It never fails: anything that cannot be read
// is logged at warn level and replaced with a placeholder.
func Load(dir string, fieldW, fieldH int, log zerolog.Logger) *Set {
	s := &Set{}

	if img, err := loadNamed(dir, "background"); err == nil {
		s.Background = raster.Scale(img, fieldW, fieldH)
	} else {
		s.fallback(log, "background", err)
		s.Background = PlaceholderBackground(fieldW, fieldH)
	}

	if img, err := loadNamed(dir, "farmer"); err == nil {
		s.Farmer = toRGBA(img)
	} else {
		s.fallback(log, "farmer", err)
		s.Farmer = PlaceholderFarmer()
	}

	if img, err := loadNamed(dir, "crop"); err == nil {
		s.Crop = toRGBA(img)
	} else {
		s.fallback(log, "crop", err)
		s.Crop = PlaceholderCrop()
	}

	for _, name := range enemyNames {
		img, err := loadNamed(dir, name)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Warn().Err(err).Str("sprite", name).Msg("enemy sprite unreadable, skipping")
			}
			continue
		}
		s.Enemies = append(s.Enemies, toRGBA(img))
	}
	if len(s.Enemies) == 0 {
		s.fallback(log, "enemy", ErrNotFound)
		s.Enemies = []*image.RGBA{PlaceholderEnemy()}
	}

	log.Info().
		Str("dir", dir).
		Int("enemy_variants", len(s.Enemies)).
		Strs("placeholders", s.Fallbacks).
		Msg("assets loaded")
	return s
}

// Placeholders returns a fully procedural set.
func Placeholders(fieldW, fieldH int) *Set {
	return &Set{
		Background: PlaceholderBackground(fieldW, fieldH),
		Farmer:     PlaceholderFarmer(),
		Crop:       PlaceholderCrop(),
		Enemies:    []*image.RGBA{PlaceholderEnemy()},
		Fallbacks:  []string{"background", "farmer", "crop", "enemy"},
	}
}

func (s *Set) fallback(log zerolog.Logger, name string, err error) {
	s.Fallbacks = append(s.Fallbacks, name)
	log.Warn().Err(err).Str("sprite", name).Msg("using placeholder sprite")
}

// loadNamed decodes the first existing file named name with a supported
// extension.
func loadNamed(dir, name string) (image.Image, error) {
	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return decodeFile(path)
	}
	return nil, fmt.Errorf("%s in %s: %w", name, dir, ErrNotFound)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path) // #nosec G304 -- path built from the configured assets dir
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s (%s): empty image", path, format)
	}
	return img, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
