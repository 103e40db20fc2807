package service

import (
	"math/rand"
	"sync"
	"time"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 5
)

// CodeSource produces confirmation codes. It is injected into the auth
// service so tests can supply deterministic codes.
type CodeSource interface {
	Code() string
}

type randomCodeSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRandomCodeSource() CodeSource {
	return &randomCodeSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *randomCodeSource) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, codeLength)
	for i := range buf {
		buf[i] = codeAlphabet[s.r.Intn(len(codeAlphabet))]
	}
	return string(buf)
}
