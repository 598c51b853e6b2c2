package lib

import "crypto/rand"
import "encoding/hex"

// Uuid random bytes read from crypto/rand, used to name heaps that were
// not named by the application.
type Uuid []byte

// Newuuid fill buf with random bytes, length of buf shall be even.
func Newuuid(buf Uuid) (Uuid, error) {
	if (len(buf) % 2) != 0 {
		return nil, ErrorUuidInvalidSize
	} else if _, err := rand.Read([]byte(buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Allocuuid like Newuuid but allocates a new set of bytes, instead of user
// supplied.
func Allocuuid(size int) (Uuid, error) {
	return Newuuid(make([]byte, size))
}

func (uuid Uuid) String() string {
	return hex.EncodeToString(uuid)
}
