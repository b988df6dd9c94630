// Package cryptox holds the password digests and the verification-code
// generator.
//
// The default "checksum" digest is the 32-bit string hash used by stored
// records. It is NOT a password hash. "bcrypt" can be selected in
// configuration for new installs.
package cryptox

import (
	"crypto/subtle"
	"fmt"
	"strconv"
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"
)

const (
	DigestChecksum = "checksum"
	DigestBcrypt   = "bcrypt"
)

// Digester turns a password into a stored digest and checks candidates
// against it.
type Digester interface {
	Digest(password []byte) (string, error)
	Matches(digest string, password []byte) bool
}

// NewDigester returns the digester registered under name.
func NewDigester(name string) (Digester, error) {
	switch name {
	case "", DigestChecksum:
		return ChecksumDigester{}, nil
	case DigestBcrypt:
		return BcryptDigester{Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("unknown password digest %q", name)
}

type ChecksumDigester struct{}

// Digest computes h = h*31 + c over the UTF-16 code units of the password
// with int32 wrap-around and renders it in signed decimal.
func (ChecksumDigester) Digest(password []byte) (string, error) {
	return Checksum(string(password)), nil
}

func (d ChecksumDigester) Matches(digest string, password []byte) bool {
	candidate, _ := d.Digest(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(candidate)) == 1
}

func Checksum(s string) string {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(u)
	}
	return strconv.FormatInt(int64(h), 10)
}

type BcryptDigester struct {
	Cost int
}

func (b BcryptDigester) Digest(password []byte) (string, error) {
	out, err := bcrypt.GenerateFromPassword(password, b.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt digest: %w", err)
	}
	return string(out), nil
}

func (BcryptDigester) Matches(digest string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), password) == nil
}
