// Package settings exposes the key/value restaurant configuration and the
// typed snapshot other services read tax and invoicing data from.
package settings

import (
	"context"
	"sort"
	"time"

	"github.com/restopos/backend/internal/domain/settings"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UpdateSettingsRequest upserts several entries at once
type UpdateSettingsRequest struct {
	Values map[string]string `json:"values" binding:"required,min=1"`
}

// SettingResponse is one stored entry
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SnapshotResponse is the effective configuration with defaults applied
type SnapshotResponse struct {
	TaxRate           decimal.Decimal `json:"tax_rate"`
	BusinessName      string          `json:"business_name"`
	BusinessRUC       string          `json:"business_ruc"`
	BusinessAddress   string          `json:"business_address"`
	EstablishmentCode string          `json:"establishment_code"`
	EmissionPoint     string          `json:"emission_point"`
	Currency          string          `json:"currency"`
	SRIEnvironment    string          `json:"sri_environment"`
}

// ConfigResponse is returned by GET /config
type ConfigResponse struct {
	Entries   []SettingResponse `json:"entries"`
	Effective SnapshotResponse  `json:"effective"`
}

// Provider is the read side other application services depend on
type Provider interface {
	Snapshot(ctx context.Context) (settings.Snapshot, error)
}

// Service manages configuration entries
type Service struct {
	repo     settings.Repository
	defaults settings.Defaults
	logger   *zap.Logger
}

// NewService creates a settings service
func NewService(repo settings.Repository, defaults settings.Defaults, logger *zap.Logger) *Service {
	return &Service{repo: repo, defaults: defaults, logger: logger}
}

// List returns stored entries and the effective snapshot
func (s *Service) List(ctx context.Context) (*ConfigResponse, error) {
	stored, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := &ConfigResponse{
		Entries:   make([]SettingResponse, len(stored)),
		Effective: toSnapshotResponse(settings.BuildSnapshot(s.defaults, stored)),
	}
	for i, st := range stored {
		resp.Entries[i] = SettingResponse{Key: st.Key, Value: st.Value, UpdatedAt: st.UpdatedAt}
	}
	return resp, nil
}

// Get returns one entry
func (s *Service) Get(ctx context.Context, key string) (*SettingResponse, error) {
	st, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return &SettingResponse{Key: st.Key, Value: st.Value, UpdatedAt: st.UpdatedAt}, nil
}

// Update validates every entry before storing any of them
func (s *Service) Update(ctx context.Context, req UpdateSettingsRequest) (*ConfigResponse, error) {
	if len(req.Values) == 0 {
		return nil, shared.NewValidationError("At least one config value is required")
	}
	keys := make([]string, 0, len(req.Values))
	for k := range req.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]*settings.Setting, 0, len(keys))
	for _, k := range keys {
		st, err := settings.NewSetting(k, req.Values[k])
		if err != nil {
			return nil, err
		}
		entries = append(entries, st)
	}
	if err := s.repo.Upsert(ctx, entries...); err != nil {
		return nil, err
	}
	s.logger.Info("Configuration updated", zap.Strings("keys", keys))
	return s.List(ctx)
}

// Snapshot implements Provider
func (s *Service) Snapshot(ctx context.Context) (settings.Snapshot, error) {
	stored, err := s.repo.FindAll(ctx)
	if err != nil {
		return settings.Snapshot{}, err
	}
	return settings.BuildSnapshot(s.defaults, stored), nil
}

func toSnapshotResponse(s settings.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		TaxRate:           s.TaxRate,
		BusinessName:      s.BusinessName,
		BusinessRUC:       s.BusinessRUC,
		BusinessAddress:   s.BusinessAddress,
		EstablishmentCode: s.EstablishmentCode,
		EmissionPoint:     s.EmissionPoint,
		Currency:          s.Currency,
		SRIEnvironment:    s.SRIEnvironment,
	}
}

var _ Provider = (*Service)(nil)
