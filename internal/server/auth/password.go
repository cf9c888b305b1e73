package auth

import "golang.org/x/crypto/bcrypt"

// dummyPasswordDigest is verified when a login targets a nonexistent user so
// that both branches do comparable work. It is not a credential.
const dummyPasswordDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword produces a salted bcrypt digest of the plaintext. The salt is
// embedded in the digest. A failure here is fatal for the calling operation.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the plaintext matches the bcrypt digest.
// bcrypt performs the comparison itself; any parse error counts as mismatch.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// CheckDummyPassword burns the same bcrypt cost as a real verification.
// Used on the "no such user" login path to keep timing uniform.
func CheckDummyPassword(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordDigest), []byte(password))
}
