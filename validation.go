package icon

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var (
	addressRe   = regexp.MustCompile(`^(hx|cx)[0-9a-f]{40}$`)
	hashRe      = regexp.MustCompile(`^0x[0-9a-f]{64}$`)
	hexNumberRe = regexp.MustCompile(`^0x([1-9a-f][0-9a-f]*|0)$`)
)

// IsAddress reports whether s is a well formed EOA (hx) or contract (cx)
// address.
func IsAddress(s string) bool {
	return addressRe.MatchString(s)
}

func IsEOAAddress(s string) bool {
	return IsAddress(s) && strings.HasPrefix(s, ADDRESS_EOA_PREFIX)
}

func IsContractAddress(s string) bool {
	return IsAddress(s) && strings.HasPrefix(s, ADDRESS_CONTRACT_PREFIX)
}

func IsHash(s string) bool {
	return hashRe.MatchString(s)
}

// IsHexNumber accepts only the canonical encoding a node will take: 0x
// prefix, lowercase, and no leading zeros except for the literal 0x0.
func IsHexNumber(s string) bool {
	return hexNumberRe.MatchString(s)
}

func IsPredefinedBlockValue(s string) bool {
	return s == PREDEFINED_BLOCK_LATEST
}

func ValidateAddress(s string) error {
	if !IsAddress(s) {
		return &AddressFormatError{Value: s}
	}
	return nil
}

func ValidateContractAddress(s string) error {
	if !IsContractAddress(s) {
		return &AddressFormatError{Value: s}
	}
	return nil
}

func ValidateHash(s string) error {
	if !IsHash(s) {
		return fmt.Errorf("%w: %q", ErrInvalidHash, s)
	}
	return nil
}

// ToHexNumber renders a non-negative integer in canonical 0x form.
func ToHexNumber(i *big.Int) string {
	return "0x" + i.Text(16)
}

func HexToBigInt(s string) (*big.Int, error) {
	if !IsHexNumber(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHexNumber, s)
	}

	i, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHexNumber, s)
	}

	return i, nil
}
