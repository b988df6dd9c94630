package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const CodeLength = 6

var codeSpan = big.NewInt(900000)

// GenerateCode returns a random verification code in [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
