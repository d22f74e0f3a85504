package estimator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elev8ted-roofs/estimator-api/internal/business/roof"
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/elev8ted-roofs/estimator-api/pkg/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned by history operations when no store is configured.
var ErrHistoryDisabled = errors.New("estimate history is not configured")

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	statsWindow         = 1000
)

// EstimateStore persists computed estimates.
type EstimateStore interface {
	Save(ctx context.Context, rec model.EstimateRecord) error
	Get(ctx context.Context, id string) (model.EstimateRecord, error)
	ListRecent(ctx context.Context, limit int) ([]model.EstimateRecord, error)
	SaveStats(ctx context.Context, stats model.EstimateStats) error
	GetStats(ctx context.Context) (model.EstimateStats, error)
}

// Recorder counts computed estimates.
type Recorder interface {
	IncEstimate(hasDamage bool)
}

// Service turns traced outlines and measurements into priced estimates.
type Service struct {
	calc     *roof.Calculator
	store    EstimateStore
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires the calculator with optional history and metrics. store
// and recorder may be nil.
func NewService(calc *roof.Calculator, store EstimateStore, recorder Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		calc:     calc,
		store:    store,
		recorder: recorder,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// MeasureRequest is a traced outline with its pixel scale.
type MeasureRequest struct {
	Points       []model.Point
	ScaleFactor  float64
	BuildingType string
}

// EstimateRequest prices a roof whose area is already known.
type EstimateRequest struct {
	Address string
	Points  []model.Point
	Input   roof.EstimateInput
}

// QuoteRequest measures an outline and prices it in one step. A nil
// PitchDegrees uses the estimated pitch.
type QuoteRequest struct {
	Address             string
	Points              []model.Point
	ScaleFactor         float64
	BuildingType        string
	PitchDegrees        *float64
	HasDamage           bool
	MaterialCostPerSqft *float64
	LaborCostPerSqft    *float64
}

// HistoryEnabled reports whether estimates are archived.
func (s *Service) HistoryEnabled() bool {
	return s.store != nil
}

// Measure computes area, perimeter, and the estimated pitch of an outline.
func (s *Service) Measure(req MeasureRequest) model.Measurement {
	scale := req.ScaleFactor
	if scale <= 0 {
		scale = 1.0
	}
	building := req.BuildingType
	if building == "" {
		building = roof.BuildingResidential
	}

	area := roof.PolygonArea(req.Points, scale)
	pitch := roof.EstimatePitch(area, building)
	return model.Measurement{
		AreaSqFt:        area,
		EstimatedPitch:  pitch,
		PitchMultiplier: s.calc.PitchMultiplier(pitch),
		Perimeter:       roof.Perimeter(req.Points, scale),
		PointCount:      len(req.Points),
	}
}

// Estimate prices a roof and archives the result when history is enabled.
func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (model.CostEstimate, error) {
	est, err := s.calc.TotalEstimate(req.Input)
	if err != nil {
		return model.CostEstimate{}, err
	}
	if s.recorder != nil {
		s.recorder.IncEstimate(req.Input.HasDamage)
	}
	s.archive(ctx, req, est)
	return est, nil
}

// Quote measures the outline then prices it.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (model.Quote, error) {
	m := s.Measure(MeasureRequest{
		Points:       req.Points,
		ScaleFactor:  req.ScaleFactor,
		BuildingType: req.BuildingType,
	})
	pitch := m.EstimatedPitch
	if req.PitchDegrees != nil {
		pitch = *req.PitchDegrees
	}

	est, err := s.Estimate(ctx, EstimateRequest{
		Address: req.Address,
		Points:  req.Points,
		Input: roof.EstimateInput{
			AreaSqFt:            m.AreaSqFt,
			PitchDegrees:        pitch,
			HasDamage:           req.HasDamage,
			MaterialCostPerSqft: req.MaterialCostPerSqft,
			LaborCostPerSqft:    req.LaborCostPerSqft,
		},
	})
	if err != nil {
		return model.Quote{}, err
	}
	return model.Quote{Measurement: m, Estimate: est}, nil
}

// PricingDefaults exposes the configured rates.
func (s *Service) PricingDefaults() model.PricingDefaults {
	p := s.calc.Pricing()
	return model.PricingDefaults{
		MaterialCostPerSqft:    p.MaterialCostPerSqft,
		LaborCostPerSqft:       p.LaborCostPerSqft,
		SteepRoofMultiplier:    p.SteepRoofMultiplier,
		DamageRepairMultiplier: p.DamageRepairMultiplier,
		Currency:               "USD",
	}
}

// History lists the most recent archived estimates.
func (s *Service) History(ctx context.Context, limit int) ([]model.EstimateRecord, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.store.ListRecent(ctx, limit)
}

// Record fetches a single archived estimate.
func (s *Service) Record(ctx context.Context, id string) (model.EstimateRecord, error) {
	if s.store == nil {
		return model.EstimateRecord{}, ErrHistoryDisabled
	}
	return s.store.Get(ctx, id)
}

// Stats returns the last aggregated history stats.
func (s *Service) Stats(ctx context.Context) (model.EstimateStats, error) {
	if s.store == nil {
		return model.EstimateStats{}, ErrHistoryDisabled
	}
	return s.store.GetStats(ctx)
}

// RefreshStats re-aggregates recent history and stores the result.
func (s *Service) RefreshStats(ctx context.Context) (model.EstimateStats, error) {
	if s.store == nil {
		return model.EstimateStats{}, ErrHistoryDisabled
	}
	records, err := s.store.ListRecent(ctx, statsWindow)
	if err != nil {
		return model.EstimateStats{}, fmt.Errorf("load estimates: %w", err)
	}
	stats := AggregateStats(records)
	stats.LastUpdated = s.now()
	if err := s.store.SaveStats(ctx, stats); err != nil {
		return model.EstimateStats{}, err
	}
	return stats, nil
}

func (s *Service) archive(ctx context.Context, req EstimateRequest, est model.CostEstimate) {
	if s.store == nil {
		return
	}
	rec := model.EstimateRecord{
		ID:          s.newID(),
		Address:     util.CleanAddress(req.Address),
		AddressHash: util.HashAddress(req.Address),
		Points:      req.Points,
		Inputs: model.EstimateInputs{
			AreaSqFt:            req.Input.AreaSqFt,
			PitchDegrees:        req.Input.PitchDegrees,
			HasDamage:           req.Input.HasDamage,
			MaterialCostPerSqft: req.Input.MaterialCostPerSqft,
			LaborCostPerSqft:    req.Input.LaborCostPerSqft,
		},
		Estimate:  est,
		CreatedAt: s.now(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		s.logger.Warn("archive estimate failed", zap.String("estimate_id", rec.ID), zap.Error(err))
		return
	}
	s.logger.Debug("archived estimate", zap.String("estimate_id", rec.ID), zap.Float64("total", est.Total))
}
