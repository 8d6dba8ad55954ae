package main

import (
	"math"

	"github.com/google/uuid"
)

// GenerateUUID returns a random v4 UUID used for session ids
func GenerateUUID() string {
	return uuid.NewString()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
