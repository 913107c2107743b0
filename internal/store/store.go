package store

import (
	"context"
	"errors"

	"github.com/aimatehq/aimate/internal/chat"
)

// Record is the whole persisted state for one user: the selected model and
// the bounded rolling history, oldest entry first. It is read once at the
// start of an invocation and written back wholesale at the end.
type Record struct {
	Model   string         `json:"model"`
	History []chat.Message `json:"history"`
}

var (
	ErrReadFailed  = errors.New("record read failed")
	ErrWriteFailed = errors.New("record write failed")
)

// Store is a get/put key-value adapter for user records. Get returns
// found=false when no record exists for the key.
type Store interface {
	Get(ctx context.Context, userKey string) (Record, bool, error)
	Put(ctx context.Context, userKey string, rec Record) error
}
