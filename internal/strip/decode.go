package strip

import (
	"context"
	"image"

	imagepkg "github.com/youruser/photobooth/internal/image"
	"github.com/youruser/photobooth/internal/session"
	"golang.org/x/sync/errgroup"
)

// Decoder turns a captured photo into pixels.
type Decoder interface {
	Decode(ctx context.Context, p session.CapturedPhoto) (image.Image, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(ctx context.Context, p session.CapturedPhoto) (image.Image, error)

func (f DecoderFunc) Decode(ctx context.Context, p session.CapturedPhoto) (image.Image, error) {
	return f(ctx, p)
}

// DataURLDecoder decodes the photo's data URL.
type DataURLDecoder struct{}

func (DataURLDecoder) Decode(ctx context.Context, p session.CapturedPhoto) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return imagepkg.DecodeDataURL(p.DataURL)
}

// decodeAll decodes photos with at most workers in flight. Per-photo failures
// land in errs; the returned error is only ever the context's.
func decodeAll(ctx context.Context, d Decoder, photos []session.CapturedPhoto, workers int) (imgs []image.Image, errs []error, err error) {
	imgs = make([]image.Image, len(photos))
	errs = make([]error, len(photos))
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range photos {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			imgs[i], errs[i] = d.Decode(gctx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return imgs, errs, nil
}
