package service

// QRCodeService defines the interface for QR code generation
type QRCodeService interface {
	// GenerateItemQR renders a PNG QR code pointing at the item's public page
	GenerateItemQR(itemID uint) ([]byte, error)

	// ItemURL returns the public URL encoded in an item QR code
	ItemURL(itemID uint) string
}
