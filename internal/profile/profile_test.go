package profile

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/invoice"
	"invoicer/internal/storage"
	"invoicer/pkg/models"
)

func TestLoad_Defaults(t *testing.T) {
	s := NewService(storage.NewMemory(), zerolog.Nop())
	p, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfile(), p)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Save(ctx, storage.Entry{Key: storage.KeyProfile, Value: []byte(`{"companyName":"Acme"}`)}))

	p, err := NewService(store, zerolog.Nop()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme", p.CompanyName)
	assert.Equal(t, 20.0, p.VATRate)
	assert.Equal(t, "00-00-00", p.SortCode)
}

func TestLoad_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Save(ctx, storage.Entry{Key: storage.KeyProfile, Value: []byte(`[1,2`)}))

	p, err := NewService(store, zerolog.Nop()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfile(), p)
}

func TestSaveAndPatch(t *testing.T) {
	ctx := context.Background()
	s := NewService(storage.NewMemory(), zerolog.Nop())

	p := models.DefaultProfile()
	p.CompanyName = "Acme"
	require.NoError(t, s.Save(ctx, p))

	got, err := s.Patch(ctx, func(p *models.Profile) { p.VATNumber = "GB1" })
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "GB1", got.VATNumber)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, loaded)
}

func TestSave_VATRateOutOfRange(t *testing.T) {
	ctx := context.Background()
	s := NewService(storage.NewMemory(), zerolog.Nop())

	for _, rate := range []float64{-1, 100.01} {
		p := models.DefaultProfile()
		p.VATRate = rate
		err := s.Save(ctx, p)
		fe, ok := invoice.AsFieldErrors(err)
		require.True(t, ok, "rate %v", rate)
		assert.Equal(t, []string{"vatRate"}, fe.Fields())
	}

	_, err := s.Patch(ctx, func(p *models.Profile) { p.VATRate = 150 })
	assert.Error(t, err)
	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20.0, loaded.VATRate)
}

func decodeLogo(t *testing.T, url string) image.Image {
	t.Helper()
	payload, ok := strings.CutPrefix(url, "data:image/png;base64,")
	require.True(t, ok)
	raw, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestScaleLogo(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 600, 200))
	for x := 0; x < 600; x++ {
		src.Set(x, 100, color.RGBA{B: 255, A: 255})
	}
	var in bytes.Buffer
	require.NoError(t, jpeg.Encode(&in, src, nil))

	url, err := ScaleLogo(&in, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 100), decodeLogo(t, url).Bounds())
}

func TestScaleLogo_Upscales(t *testing.T) {
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, image.NewGray(image.Rect(0, 0, 30, 40))))

	url, err := ScaleLogo(&in, 120)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 160), decodeLogo(t, url).Bounds())
}

func TestScaleLogo_Invalid(t *testing.T) {
	_, err := ScaleLogo(strings.NewReader("definitely not an image"), 300)
	assert.ErrorIs(t, err, ErrInvalidLogo)
}
