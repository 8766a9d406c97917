package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goodfoods/goodfoods/internal/domain"
	"github.com/goodfoods/goodfoods/internal/usecase"
)

// VenueStore implements usecase.VenueStore against SQLite.
type VenueStore struct {
	db     *sql.DB
	logger *slog.Logger
}

const venueColumns = "id, name, cuisines, rating, capacity, price_tier, city, address, image, tags, phone, description, is_active"

// Search returns active venues matching the filter, ordered by rating
// descending with ties broken by id, so repeated identical calls return
// identical sequences. Zero-valued filter fields apply no constraint.
func (s *VenueStore) Search(ctx context.Context, filter usecase.VenueFilter) ([]domain.Venue, error) {
	query := "SELECT " + venueColumns + " FROM venues WHERE is_active = 1"
	var args []interface{}

	if filter.Cuisine != "" {
		query += " AND LOWER(cuisines) LIKE '%' || LOWER(?) || '%'"
		args = append(args, filter.Cuisine)
	}
	if filter.City != "" {
		query += " AND LOWER(city) LIKE '%' || LOWER(?) || '%'"
		args = append(args, filter.City)
	}
	if filter.MinCapacity > 0 {
		query += " AND capacity >= ?"
		args = append(args, filter.MinCapacity)
	}
	if filter.PriceTier > 0 {
		query += " AND price_tier = ?"
		args = append(args, filter.PriceTier)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	query += " ORDER BY rating DESC, id ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching venues: %w", err)
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating venues: %w", err)
	}
	s.logger.Debug("Venue search completed", slog.Int("count", len(venues)))
	return venues, nil
}

// GetByID looks up a single venue. Returns usecase.ErrVenueNotFound
// when absent.
func (s *VenueStore) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id)
	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, usecase.ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Insert stores a venue, replacing any previous row with the same id.
func (s *VenueStore) Insert(ctx context.Context, v domain.Venue) error {
	cuisines, err := json.Marshal(v.Cuisines)
	if err != nil {
		return fmt.Errorf("encoding cuisines: %w", err)
	}
	tags, err := json.Marshal(v.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO venues (`+venueColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, string(cuisines), v.Rating, v.Capacity, v.PriceTier,
		v.City, v.Address, v.Image, string(tags), v.Phone, v.Description, boolToInt(v.Active),
	)
	if err != nil {
		return fmt.Errorf("inserting venue %q: %w", v.ID, err)
	}
	return nil
}

// Count returns the number of venue rows, active or not.
func (s *VenueStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM venues").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting venues: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*domain.Venue, error) {
	var v domain.Venue
	var cuisines, tags sql.NullString
	var address, image, phone, description sql.NullString
	var active int
	err := row.Scan(&v.ID, &v.Name, &cuisines, &v.Rating, &v.Capacity, &v.PriceTier,
		&v.City, &address, &image, &tags, &phone, &description, &active)
	if err != nil {
		return nil, err
	}
	v.Address = address.String
	v.Image = image.String
	v.Phone = phone.String
	v.Description = description.String
	v.Active = active != 0
	if cuisines.Valid && cuisines.String != "" {
		if err := json.Unmarshal([]byte(cuisines.String), &v.Cuisines); err != nil {
			// Legacy rows may hold a bare cuisine name instead of JSON.
			v.Cuisines = []string{strings.Trim(cuisines.String, `"`)}
		}
	}
	if tags.Valid && tags.String != "" && tags.String != "null" {
		if err := json.Unmarshal([]byte(tags.String), &v.Tags); err != nil {
			v.Tags = nil
		}
	}
	return &v, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
