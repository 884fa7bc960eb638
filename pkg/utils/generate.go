package utils

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// ==================== REQUEST ID ====================

func GenerateRequestID() string {
	return uuid.New().String()
}

// ==================== BOOKING CODE ====================

// GenerateBookingCode creates a booking code with timestamp
func GenerateBookingCode(now time.Time) string {
	// Format: BOOK-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.IntN(10000))

	return fmt.Sprintf("BOOK-%s-%s-%s", datePart, timePart, randomPart)
}
