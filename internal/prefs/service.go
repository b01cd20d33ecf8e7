package prefs

import (
	"context"
	"errors"
	"log"
	"strconv"
)

const keyZoom = "zoom"

type Service struct {
	store  Store
	logger *log.Logger
}

func NewService(store Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: store, logger: logger}
}

// Zoom returns the stored zoom, or DefaultZoom when nothing usable is stored.
func (s *Service) Zoom(ctx context.Context) float64 {
	v, err := s.store.Get(ctx, keyZoom)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Printf("prefs: read zoom: %v", err)
		}
		return DefaultZoom
	}
	z, err := strconv.ParseFloat(v, 64)
	if err != nil {
		s.logger.Printf("prefs: corrupt zoom %q", v)
		return DefaultZoom
	}
	return ClampZoom(z)
}

// AdjustZoom applies delta to the stored zoom and persists the result.
func (s *Service) AdjustZoom(ctx context.Context, delta float64) (float64, error) {
	return s.SetZoom(ctx, s.Zoom(ctx)+delta)
}

func (s *Service) SetZoom(ctx context.Context, z float64) (float64, error) {
	z = ClampZoom(z)
	if err := s.store.Put(ctx, keyZoom, strconv.FormatFloat(z, 'f', 1, 64)); err != nil {
		return 0, err
	}
	return z, nil
}
