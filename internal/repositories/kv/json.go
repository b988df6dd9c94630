package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the JSON document stored under key into a T. The boolean
// reports whether the key existed.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var v T
	raw, err := s.Get(ctx, key)
	if err != nil {
		return v, false, err
	}
	if raw == nil {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode storage[%s]: %w", key, err)
	}
	return v, true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode storage[%s]: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// UpdateJSON loads the document under key (zero T when absent), applies fn
// and writes the result back in one Store.Update.
func UpdateJSON[T any](ctx context.Context, s Store, key string, fn func(cur T) (T, error)) error {
	return s.Update(ctx, key, func(old []byte) ([]byte, error) {
		var cur T
		if old != nil {
			if err := json.Unmarshal(old, &cur); err != nil {
				return nil, fmt.Errorf("failed to decode storage[%s]: %w", key, err)
			}
		}
		next, err := fn(cur)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("failed to encode storage[%s]: %w", key, err)
		}
		return raw, nil
	})
}
