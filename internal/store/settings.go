// ABOUTME: User settings singleton: read, and update-or-create with defaults
// ABOUTME: SettingsPatch carries the partial fields to merge

package store

import (
	"context"
	"encoding/json"
)

// Default settings used when the singleton is first created.
const (
	DefaultTheme         = "system"
	DefaultLanguage      = LanguageFrench
	DefaultAnimationType = "bubbles"
)

// DefaultUserSettings returns the settings a fresh device starts with.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Theme:            DefaultTheme,
		Language:         DefaultLanguage,
		AnimationType:    DefaultAnimationType,
		AnimationEnabled: true,
	}
}

// SettingsPatch lists the settings fields to change. Nil fields are left alone.
type SettingsPatch struct {
	Theme            *string
	Language         *string
	AnimationType    *string
	AnimationEnabled *bool
	CustomTheme      json.RawMessage
	ClearCustomTheme bool
}

func (p SettingsPatch) apply(u *UserSettings) {
	if p.Theme != nil {
		u.Theme = *p.Theme
	}
	if p.Language != nil {
		u.Language = *p.Language
	}
	if p.AnimationType != nil {
		u.AnimationType = *p.AnimationType
	}
	if p.AnimationEnabled != nil {
		u.AnimationEnabled = *p.AnimationEnabled
	}
	if p.ClearCustomTheme {
		u.CustomTheme = nil
	} else if len(p.CustomTheme) > 0 {
		u.CustomTheme = append(json.RawMessage(nil), p.CustomTheme...)
	}
}

// UserSettings returns the settings singleton (the first settings record).
func (s *Store) UserSettings(ctx context.Context) (UserSettings, bool) {
	settings := GetAll(ctx, s, Settings)
	if len(settings) == 0 {
		return UserSettings{}, false
	}
	return settings[0], true
}

// UpdateUserSettings merges patch into the settings singleton, creating it from
// DefaultUserSettings when the device has none yet.
func (s *Store) UpdateUserSettings(ctx context.Context, patch SettingsPatch) (UserSettings, error) {
	if existing, ok := s.UserSettings(ctx); ok {
		updated, found, err := Update(ctx, s, Settings, existing.ID, patch.apply)
		if err != nil || found {
			return updated, err
		}
	}

	fresh := DefaultUserSettings()
	patch.apply(&fresh)
	return Create(ctx, s, Settings, fresh)
}
