package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

// PasswordStrength is the number of character classes present in a password
// (uppercase, lowercase, digit, special), 0-4.
type PasswordStrength int

// policySpecials lists the punctuation that counts as the special class.
// Anything outside the four classes, spaces included, counts toward none.
const policySpecials = `!@#$%^&*(),.?":{}|<>`

// CheckPassword enforces the password policy: at least 6 characters and at
// least two of the four character classes.
func CheckPassword(password string) (PasswordStrength, bool) {
	if len(password) < 6 {
		return 0, false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(policySpecials, r):
			hasSpecial = true
		}
	}

	strength := PasswordStrength(0)
	for _, present := range []bool{hasUpper, hasLower, hasDigit, hasSpecial} {
		if present {
			strength++
		}
	}

	return strength, strength >= 2
}

const (
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*"
)

// GeneratePassword produces a random 12-character password containing at
// least one character from each class, so it always satisfies the policy.
func GeneratePassword() (string, error) {
	charset := upperChars + lowerChars + digitChars + specialChars

	picks := make([]byte, 0, 12)
	for _, set := range []string{upperChars, lowerChars, digitChars, specialChars} {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		picks = append(picks, c)
	}
	for len(picks) < 12 {
		c, err := randomChar(charset)
		if err != nil {
			return "", err
		}
		picks = append(picks, c)
	}

	// Shuffle so the class-guaranteed characters are not always first.
	for i := len(picks) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := int(n.Int64())
		picks[i], picks[j] = picks[j], picks[i]
	}

	var sb strings.Builder
	sb.Write(picks)
	return sb.String(), nil
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
