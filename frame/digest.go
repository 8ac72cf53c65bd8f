package frame

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest returns the hex BLAKE2b-256 of the pixel payload. Row padding is
// excluded, so frames with equal pixels and different strides hash the same.
func (f *Frame) Digest() (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	err = Read(f, func(v View) error {
		for y := 0; y < v.Height(); y++ {
			row, err := v.Row(y)
			if err != nil {
				return err
			}
			h.Write(row)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
