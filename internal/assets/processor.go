package assets

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/invitarte/invitarte-api/internal/logger"
	"github.com/invitarte/invitarte-api/internal/models"
	"go.uber.org/zap"
)

// Per-type bounding boxes for image uploads. Anything larger is scaled down
// (aspect preserved); smaller images pass through at their own size.
var imageBounds = map[models.AssetType]image.Point{
	models.AssetHero:    {X: 1920, Y: 1080},
	models.AssetGallery: {X: 1600, Y: 1600},
}

type Stored struct {
	ObjectName  string
	ContentType string
	Size        int64
}

// Processor normalizes uploads and writes them under the upload directory.
// Hero and gallery uploads are re-encoded as size-capped JPEGs; video and
// music files are stored byte for byte.
type Processor struct {
	dir string
	log *zap.Logger
}

func NewProcessor(dir string) (*Processor, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Processor{dir: dir, log: logger.WithComponent("assets")}, nil
}

func (p *Processor) Store(assetType models.AssetType, contentType string, r io.Reader) (*Stored, error) {
	if bounds, ok := imageBounds[assetType]; ok {
		return p.storeImage(bounds, r)
	}
	return p.storeRaw(contentType, r)
}

func (p *Processor) storeImage(bounds image.Point, r io.Reader) (*Stored, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	size := img.Bounds().Size()
	if size.X > bounds.X || size.Y > bounds.Y {
		img = imaging.Fit(img, bounds.X, bounds.Y, imaging.Lanczos)
	}

	objectName := uuid.NewString() + ".jpg"
	path := filepath.Join(p.dir, objectName)
	if err := imaging.Save(img, path, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	p.log.Info("stored image", zap.String("object", objectName), zap.Int64("bytes", info.Size()))
	return &Stored{ObjectName: objectName, ContentType: "image/jpeg", Size: info.Size()}, nil
}

func (p *Processor) storeRaw(contentType string, r io.Reader) (*Stored, error) {
	objectName := uuid.NewString() + extensionFor(contentType)
	path := filepath.Join(p.dir, objectName)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	p.log.Info("stored file", zap.String("object", objectName), zap.Int64("bytes", size))
	return &Stored{ObjectName: objectName, ContentType: contentType, Size: size}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "video/mp4":
		return ".mp4"
	case "audio/mpeg":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".bin"
	}
}
