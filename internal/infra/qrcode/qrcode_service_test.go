package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"storefront/config"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  qrcode.RecoveryLevel
	}{
		{"Low error correction", "L", qrcode.Low},
		{"Medium error correction", "M", qrcode.Medium},
		{"High error correction", "q", qrcode.High},
		{"Highest error correction", "H", qrcode.Highest},
		{"Default error correction", "invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recoveryLevel(tt.level))
		})
	}
}

func TestQRCodeService_ItemURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.PublicBaseURL = "https://shop.example.com/"

	service := NewQRCodeService(cfg)
	assert.Equal(t, "https://shop.example.com/42/", service.ItemURL(42))
}

func TestQRCodeService_GenerateItemQR(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newQRCodeService("http://localhost:8080", tt.size, "M")

			qrBytes, err := service.GenerateItemQR(7)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(qrBytes))
			require.NoError(t, err)
			assert.Equal(t, tt.size, img.Bounds().Dx())
			assert.Equal(t, tt.size, img.Bounds().Dy())
		})
	}
}

func TestNewQRCodeService_Defaults(t *testing.T) {
	service := NewQRCodeService(&config.Config{}).(*qrcodeService)

	assert.Equal(t, defaultSize, service.size)
	assert.Equal(t, qrcode.Medium, service.errorCorrectionLevel)
}
