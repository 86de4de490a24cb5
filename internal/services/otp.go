package services

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/vodintech/caragecarcare/internal/logger"
)

// CodeSender delivers a verification code to a phone number.
// Real SMS delivery is out of scope; deployments plug in their own provider.
type CodeSender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// LogSender is the stub sender used when no SMS provider is configured.
// It logs the code instead of delivering it.
type LogSender struct {
	log logger.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(log logger.Logger) *LogSender {
	return &LogSender{log: log}
}

// SendCode logs the code that would have been delivered
func (s *LogSender) SendCode(ctx context.Context, phone, code string) error {
	s.log.Info("Verification code dispatched (stub sender)", "phone", phone, "code", code)
	return nil
}

// GenerateCode returns a random 6-digit verification code
func GenerateCode() (string, error) {
	// random [0..899999] + 100000 => 100000..999999
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	v := n.Int64() + 100000

	b := []byte("000000")
	for i := 5; i >= 0; i-- {
		b[i] = byte('0' + (v % 10))
		v /= 10
	}
	return string(b), nil
}

// Ensure LogSender implements CodeSender
var _ CodeSender = (*LogSender)(nil)
