package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"standort-api/internal/geocoder"
	"standort-api/internal/models"
)

// ErrMissingFields is returned when a submission lacks a required field.
var ErrMissingFields = errors.New("service: missing required fields")

// ErrNoRecords is returned by ExportCSV when the table is empty.
var ErrNoRecords = errors.New("service: no records")

// LocationService contains the core business logic for handling location submissions
type LocationService struct {
	repo       LocationRepository
	resolver   AddressResolver
	timeOffset time.Duration
}

// Repository interface for dependency injection
type LocationRepository interface {
	Insert(ctx context.Context, loc models.Location) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.Location, error)
	All(ctx context.Context) ([]models.Location, error)
	AllNewestFirst(ctx context.Context) ([]models.Location, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

// AddressResolver interface for dependency injection
type AddressResolver interface {
	Reverse(ctx context.Context, lat, lon float64) string
}

// NewLocationService creates a new location service
func NewLocationService(repo LocationRepository, resolver AddressResolver, timeOffset time.Duration) *LocationService {
	return &LocationService{repo: repo, resolver: resolver, timeOffset: timeOffset}
}

// Submission is an inbound, untrusted location payload.
type Submission struct {
	Bezirk           string
	XCoord           float64
	YCoord           float64
	Sonstiges        string
	Erstellungsdatum string
}

// Submit validates a submission, resolves its address, computes the creation
// time and persists the assembled record, returning the new id.
func (s *LocationService) Submit(ctx context.Context, sub Submission) (int64, error) {
	// A coordinate of exactly 0 counts as missing.
	if sub.Bezirk == "" || sub.XCoord == 0 || sub.YCoord == 0 || sub.Erstellungsdatum == "" {
		return 0, ErrMissingFields
	}

	erstellungszeit := time.Now().UTC().Add(s.timeOffset).Format("15:04:05")

	// x_coord/y_coord are longitude/latitude, the resolver wants (lat, lon).
	adresse := s.resolver.Reverse(ctx, sub.YCoord, sub.XCoord)

	loc := models.Location{
		Bezirk:           sub.Bezirk,
		Erstellungsdatum: sub.Erstellungsdatum,
		Erstellungszeit:  erstellungszeit,
		XCoord:           sub.XCoord,
		YCoord:           sub.YCoord,
		Sonstiges:        sub.Sonstiges,
		Adresse:          adresse,
	}
	if adresse != geocoder.PlaceholderAddress {
		decomposeAddress(adresse, &loc)
	}

	id, err := s.repo.Insert(ctx, loc)
	if err != nil {
		return 0, fmt.Errorf("service: failed to save location: %w", err)
	}

	return id, nil
}

// decomposeAddress splits a comma-separated address string and assigns its
// parts by position. The mapping is fixed-index and makes no attempt at a
// structured parse; addresses with fewer or reordered components silently
// misassign fields.
func decomposeAddress(adresse string, loc *models.Location) {
	parts := strings.Split(adresse, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	fields := []*string{
		&loc.Hausnummer,
		&loc.Strasse,
		&loc.BezirkSpez,
		&loc.Ort,
		&loc.Bundesland,
		&loc.PLZ,
		&loc.Land,
	}
	for i, field := range fields {
		if i < len(parts) {
			*field = parts[i]
		}
	}
}

// Recent returns up to limit records, most recently created first.
func (s *LocationService) Recent(ctx context.Context, limit int) ([]models.Location, error) {
	locations, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch recent locations: %w", err)
	}
	return locations, nil
}

// Records returns every record, newest first, for the admin listing.
func (s *LocationService) Records(ctx context.Context) ([]models.Location, error) {
	locations, err := s.repo.AllNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch locations: %w", err)
	}
	return locations, nil
}

// Delete removes a single record by id. A non-existent id is a no-op.
func (s *LocationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete location: %w", err)
	}
	return nil
}

// Reset removes every record.
func (s *LocationService) Reset(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("service: failed to reset locations: %w", err)
	}
	return nil
}
