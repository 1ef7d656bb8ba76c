package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateEventID returns an opaque event identifier, e.g. evt_1700000000_042133.
func GenerateEventID() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("evt_%d_%06d", timestamp, randomNum.Int64())
}
