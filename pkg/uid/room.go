package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRoomID returns a short crypto-random room token. 8 bytes is
// plenty of entropy against collision for process-lifetime rooms while
// staying short enough to share by hand.
func GenerateRoomID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
