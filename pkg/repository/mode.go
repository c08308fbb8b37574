package repository

import (
	"context"
	"strconv"

	"github.com/umputun/dealscope/pkg/domain"
)

// ModeRepository persists the autonomous flag in the settings table
type ModeRepository struct {
	settings *SettingRepository
	def      bool
}

// NewModeRepository creates a mode repository, def is reported until the first change
func NewModeRepository(settings *SettingRepository, def bool) *ModeRepository {
	return &ModeRepository{settings: settings, def: def}
}

// Get returns the current mode, read from storage on every call
func (r *ModeRepository) Get(ctx context.Context) (domain.ModeState, error) {
	s, err := r.settings.GetSetting(ctx, domain.SettingAutonomousMode)
	if err != nil {
		return domain.ModeState{}, err
	}
	if s == nil {
		return domain.ModeState{Autonomous: r.def}, nil
	}
	return toModeState(s), nil
}

// Set stores the mode explicitly, setting the same value again only refreshes the timestamp
func (r *ModeRepository) Set(ctx context.Context, autonomous bool) (domain.ModeState, error) {
	s, err := r.settings.SetSetting(ctx, domain.SettingAutonomousMode, strconv.FormatBool(autonomous))
	if err != nil {
		return domain.ModeState{}, err
	}
	return toModeState(s), nil
}

// Toggle flips the mode in a single statement and returns the new state
func (r *ModeRepository) Toggle(ctx context.Context) (domain.ModeState, error) {
	s, err := r.settings.FlipSetting(ctx, domain.SettingAutonomousMode, r.def)
	if err != nil {
		return domain.ModeState{}, err
	}
	return toModeState(s), nil
}

func toModeState(s *domain.Setting) domain.ModeState {
	autonomous, _ := strconv.ParseBool(s.Value) // anything unparsable is manual
	return domain.ModeState{Autonomous: autonomous, UpdatedAt: s.UpdatedAt}
}
