package progress

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/tracetutor/internal/catalog"
)

// ErrCorrupt is returned by Load when the stored state cannot be decoded.
var ErrCorrupt = errors.New("corrupt progress state")

// KV is the storage Load and Save need.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// KeyPrefix starts every progress key.
const KeyPrefix = "quiz:"

// CacheKey derives the storage key for a question set. The key changes
// whenever the questions change, so stale answers are never shown for
// edited questions.
func CacheKey(setID string, questions []catalog.Question) string {
	h := sha256.New()
	for _, q := range questions {
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%s\x1e",
			q.ID, q.Kind, q.Prompt, q.CorrectOption, q.ReferenceSolution)
		for _, o := range q.Options {
			fmt.Fprintf(h, "%s\x1f", o)
		}
	}
	return KeyPrefix + setID + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}

// SetPrefix returns the key prefix shared by all versions of a set.
func SetPrefix(setID string) string {
	return KeyPrefix + setID + ":"
}

// Load reads the state stored under key. A missing key yields an empty
// state and no error.
func Load(ctx context.Context, kv KV, key string) (*State, error) {
	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if !found {
		return NewState(), nil
	}

	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	s.ensureMaps()
	return &s, nil
}

// Save writes state under key.
func Save(ctx context.Context, kv KV, key string, s *State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
