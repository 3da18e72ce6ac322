package service

import (
	"math/rand"
	"strconv"
	"time"
)

const (
	verificationCodeLength = 6
	deliveryOTPLength      = 6
	codeExpiry             = 10 * time.Minute
)

// numericCode returns a random digit string of length n. Leading zeros are
// allowed; codes are compared as strings.
func numericCode(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte('0' + rand.Intn(10))
	}
	return string(buf)
}

// cancelCode returns a 4-digit code in [1000, 9999].
func cancelCode() string {
	return strconv.Itoa(rand.Intn(9000) + 1000)
}
