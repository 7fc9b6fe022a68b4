// ABOUTME: Scalar preference values stored beside the tables
// ABOUTME: Reads never fail; write failures are logged and returned for optional handling

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2389/moodspace/internal/kv"
)

// ErrReservedKey is returned when a scalar key collides with a table name.
var ErrReservedKey = errors.New("key is reserved for a table")

// Scalar keys used by the app.
const (
	KeyTheme            = "theme"
	KeyLanguage         = "language"
	KeyAnimationType    = "animationType"
	KeyAnimationEnabled = "animationEnabled"
	KeyCustomTheme      = "customTheme"
	KeyCardAesthetic    = "cardAesthetic"
)

// GetValue reads the scalar stored under key. It reports false when the key is
// absent, holds JSON null, or cannot be read or decoded; failures are logged.
func GetValue[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var v T

	if IsTableName(key) {
		s.logger.Error("refusing to read table as scalar value", "key", key)
		return v, false
	}

	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return v, false
	}
	if err != nil {
		s.logger.Error("reading value failed", "key", key, "error", err)
		return v, false
	}
	if string(raw) == "null" {
		return v, false
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Error("decoding value failed", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return v, true
}

// SetValue writes a scalar under key. Failures are logged and returned; callers
// that treat preference writes as best effort may ignore the error.
func (s *Store) SetValue(ctx context.Context, key string, value any) error {
	if IsTableName(key) {
		s.logger.Error("refusing to overwrite table with scalar value", "key", key)
		return fmt.Errorf("setting %q: %w", key, ErrReservedKey)
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("encoding value failed", "key", key, "error", err)
		return fmt.Errorf("encoding %q: %w", key, err)
	}

	if err := s.kv.Set(ctx, key, data); err != nil {
		s.logger.Error("writing value failed", "key", key, "error", err)
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// DeleteValue removes a scalar. Failures are logged and returned.
func (s *Store) DeleteValue(ctx context.Context, key string) error {
	if IsTableName(key) {
		return fmt.Errorf("deleting %q: %w", key, ErrReservedKey)
	}
	if err := s.kv.Delete(ctx, key); err != nil {
		s.logger.Error("deleting value failed", "key", key, "error", err)
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}
