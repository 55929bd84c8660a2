package password

import "golang.org/x/crypto/bcrypt"

// Package password wraps bcrypt so the rest of the code never touches a
// plaintext beyond these two calls. bcrypt is salted and adaptive, and
// CompareHashAndPassword runs in time independent of how much of the
// password matches.

// Hash returns a salted bcrypt digest of the plaintext.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare returns nil when plain matches the stored digest.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
