package main

import (
	"math/rand"
)

// RandHeteroglyphs produces N pseudorandom characters from a list of
// characters that are not easily visually confused with one another.
func RandHeteroglyphs(n int) string {
	letters := "abcdefghkmnpqrstwxyz"
	res := make([]byte, n)
	for i := range res {
		res[i] = letters[rand.Intn(len(letters))]
	}

	return string(res)
}
