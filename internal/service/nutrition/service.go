package nutrition

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

// CatalogProvider supplies the parsed reference data.
type CatalogProvider interface {
	Get(ctx context.Context) (models.Catalog, error)
}

// Service runs the requirement/diet pipeline for one request at a time.
type Service struct {
	catalog CatalogProvider
	logger  *zap.Logger
}

// NewService wires a nutrition service.
func NewService(catalog CatalogProvider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, logger: logger}
}

// Evaluate recomputes requirement, diet totals and coverage from scratch.
// A missing subcategory row is reported through Evaluation.Found rather than
// an error; diet totals are still computed.
func (s *Service) Evaluate(ctx context.Context, session models.Session, req models.EvaluationRequest) (models.Evaluation, error) {
	if !session.Authenticated {
		return models.Evaluation{}, models.ErrUnauthenticated
	}
	if req.Weight <= 0 || !models.Finite(req.Weight) {
		return models.Evaluation{}, models.ErrInvalidWeight
	}

	catalog, err := s.catalog.Get(ctx)
	if err != nil {
		return models.Evaluation{}, fmt.Errorf("load catalog: %w", err)
	}

	table, bracket, err := RequirementsFor(catalog.Requirements, req.Weight)
	if err != nil {
		return models.Evaluation{}, fmt.Errorf("requirements for %.1f kg: %w", req.Weight, err)
	}

	eval := models.Evaluation{
		Weight:      req.Weight,
		Subcategory: req.Subcategory,
		Notes:       req.Notes,
		Bracket:     bracket,
		Diet:        req.Selections.Active(),
	}

	vector, err := Resolve(table, req.Subcategory, req.Weight)
	switch {
	case err == nil:
		eval.Found = true
		eval.Requirement = vector
	case errors.Is(err, models.ErrNotFound):
		eval.Warning = fmt.Sprintf("no requirement data for %q at %g kg", req.Subcategory, req.Weight)
		s.logger.Warn("requirement row not found",
			zap.String("subcategory", req.Subcategory),
			zap.Float64("weight", req.Weight))
	default:
		return models.Evaluation{}, err
	}

	eval.Totals = aggregate(eval.Diet, catalog.Feeds, s.logger)

	if eval.Found && len(eval.Totals) > 0 {
		eval.Comparison = Compare(eval.Requirement, eval.Totals)
	}

	s.logger.Debug("evaluation computed",
		zap.Float64("weight", req.Weight),
		zap.Int("bracket_low", int(bracket.Low)),
		zap.Int("bracket_high", int(bracket.High)),
		zap.Int("diet_rows", len(eval.Diet)),
		zap.Int("comparison_rows", len(eval.Comparison)))

	return eval, nil
}

// FeedOptions lists the selectable feeds with the placeholder first.
func (s *Service) FeedOptions(ctx context.Context) ([]string, error) {
	catalog, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Feeds.Options(), nil
}

// WeightClasses lists the tabulated weight classes.
func (s *Service) WeightClasses(ctx context.Context) ([]models.WeightClass, error) {
	catalog, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Requirements.Weights(), nil
}
