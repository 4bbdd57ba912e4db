package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// CalculateDataMD5 returns the hex MD5 digest of the given bytes, used
// to derive stable filenames for uploaded images
func CalculateDataMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
