package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into storable hashes and checks
// candidates against them.
//
// Implementations must never log or persist the plaintext. Check must compare
// in constant time and must return false (not an error) for any mismatch or
// malformed hash, so callers cannot distinguish the two.
type PasswordHasher interface {
	// Hash returns a salted, self-describing hash of plain.
	Hash(plain string) (string, error)

	// Check reports whether plain matches hash.
	Check(plain, hash string) bool
}
