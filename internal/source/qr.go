package source

import (
	"fmt"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// QRCard renders a QR code for link into workDir and returns its path. The
// card is meant to be appended to the long pool so it cycles with the long
// images.
func QRCard(link string, size int, workDir string) (string, error) {
	if size <= 0 {
		size = 512
	}

	path := filepath.Join(workDir, "qr_card.png")
	if err := qrcode.WriteFile(link, qrcode.Medium, size, path); err != nil {
		return "", fmt.Errorf("generate qr card: %w", err)
	}
	return path, nil
}
