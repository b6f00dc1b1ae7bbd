package qrcode

import (
	"fmt"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrcodeService struct {
	baseURL              string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a QR code service for the configured public origin.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size, level := defaultSize, "M"
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
	}

	return newQRCodeService(cfg.HTTP.PublicBaseURL, size, level)
}

func newQRCodeService(baseURL string, size int, errorCorrectionLevel string) *qrcodeService {
	return &qrcodeService{
		baseURL:              strings.TrimRight(baseURL, "/"),
		size:                 size,
		errorCorrectionLevel: recoveryLevel(errorCorrectionLevel),
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// ItemURL is the item page address: <base>/<id>/
func (s *qrcodeService) ItemURL(itemID uint) string {
	return fmt.Sprintf("%s/%d/", s.baseURL, itemID)
}

// GenerateItemQR encodes ItemURL as a PNG of the configured size.
func (s *qrcodeService) GenerateItemQR(itemID uint) ([]byte, error) {
	qrCode, err := qrcode.New(s.ItemURL(itemID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
