package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/astro-backend-go/internal/models"
	"github.com/jengzang/astro-backend-go/internal/spatial"
)

// ErrPlaceNotFound is returned when no cached place matches.
var ErrPlaceNotFound = errors.New("place not found")

// PlaceRepository handles database operations for cached geocoding results
type PlaceRepository struct {
	db *sql.DB
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(db *sql.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// NormalizeQuery folds case and whitespace so equivalent place names share a cache row.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

const placeColumns = `id, query, name, latitude, longitude, source, created_at`

func scanPlace(row interface{ Scan(...any) error }) (*models.Place, error) {
	p := &models.Place{}
	err := row.Scan(&p.ID, &p.Query, &p.Name, &p.Latitude, &p.Longitude, &p.Source, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByQuery returns the cached place for a lookup string.
func (r *PlaceRepository) GetByQuery(ctx context.Context, query string) (*models.Place, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+placeColumns+` FROM places WHERE query = ?`, NormalizeQuery(query))

	p, err := scanPlace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return p, nil
}

// Save inserts the place, or refreshes the row already cached under the same query.
// ID and CreatedAt are filled in from the stored row.
func (r *PlaceRepository) Save(ctx context.Context, p *models.Place) error {
	if !spatial.Valid(p.Latitude, p.Longitude) {
		return fmt.Errorf("invalid coordinates %f,%f", p.Latitude, p.Longitude)
	}

	p.Query = NormalizeQuery(p.Query)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO places (query, name, latitude, longitude, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(query) DO UPDATE SET
			name = excluded.name,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			source = excluded.source
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.Query, p.Name, p.Latitude, p.Longitude, p.Source, p.CreatedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save place: %w", err)
	}
	return nil
}

// Nearest returns the cached place closest to lat/lon within radiusKm, and its distance.
func (r *PlaceRepository) Nearest(ctx context.Context, lat, lon, radiusKm float64) (*models.Place, float64, error) {
	box := spatial.BoundingBox(lat, lon, radiusKm)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+placeColumns+`
		FROM places
		WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?
	`, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query nearby places: %w", err)
	}
	defer rows.Close()

	var best *models.Place
	bestDist := radiusKm
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan place: %w", err)
		}
		if d := spatial.DistanceKm(lat, lon, p.Latitude, p.Longitude); d <= bestDist {
			best, bestDist = p, d
		}
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate places: %w", err)
	}

	if best == nil {
		return nil, 0, ErrPlaceNotFound
	}
	return best, bestDist, nil
}

// Count returns the number of cached places.
func (r *PlaceRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM places`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	return n, nil
}
