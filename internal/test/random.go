package test

import (
	"math/rand"
	"sync"
	"time"
)

const (
	digits  = "0123456789"
	letters = "abcdefghijklmnopqrstuvwxyz"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomDigits returns n pseudo-random decimal digits.
func RandomDigits(n int) string {
	return randomFrom(digits, n)
}

// RandomCPF returns a random 11 digit document number.
func RandomCPF() string {
	return RandomDigits(11)
}

// RandomName returns a lowercase word of length between minLen and maxLen.
func RandomName(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += randomIntn(maxLen - minLen + 1)
	}
	return randomFrom(letters, length)
}

func randomFrom(alphabet string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[randomIntn(len(alphabet))]
	}
	return string(buf)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
