// Package stations provides read-only access to the station database,
// a Postgres + PostGIS table of station codes, names, and geometries.
package stations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BRAVO68WEB/railmap-map-india/internal/models"
)

// corridorRadiusMeters is how far from a route's geometry a station may
// sit and still count as a corridor station.
const corridorRadiusMeters = 2000

// Directory is the station lookup service backed by a pgx connection
// pool. It is safe for concurrent use.
type Directory struct {
	pool *pgxpool.Pool
}

// NewDirectory connects to the station database and verifies the
// connection with a ping.
func NewDirectory(ctx context.Context, databaseURL string) (*Directory, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Directory{pool: pool}, nil
}

// Close releases the connection pool.
func (d *Directory) Close() {
	d.pool.Close()
}

// Ping reports whether the database is reachable.
func (d *Directory) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

// ByCode looks up a single station by its code. Returns (nil, nil)
// when the code does not resolve.
func (d *Directory) ByCode(ctx context.Context, code string) (*models.Station, error) {
	query := `
		SELECT code, name, ST_Y(geom) AS lat, ST_X(geom) AS lon
		FROM stations
		WHERE code = UPPER($1) AND geom IS NOT NULL
		LIMIT 1
	`

	var s models.Station
	err := d.pool.QueryRow(ctx, query, code).Scan(&s.Code, &s.Name, &s.Lat, &s.Lon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query station %s: %w", code, err)
	}

	return &s, nil
}

// ByCodes looks up many stations at once, returning a partial map keyed
// by uppercase code. Codes with no match are simply absent.
func (d *Directory) ByCodes(ctx context.Context, codes []string) (map[string]models.Station, error) {
	result := make(map[string]models.Station)
	if len(codes) == 0 {
		return result, nil
	}

	upper := make([]string, len(codes))
	for i, c := range codes {
		upper[i] = strings.ToUpper(c)
	}

	query := `
		SELECT code, name, ST_Y(geom) AS lat, ST_X(geom) AS lon
		FROM stations
		WHERE code = ANY($1) AND geom IS NOT NULL
	`

	rows, err := d.pool.Query(ctx, query, upper)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations by codes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.Code, &s.Name, &s.Lat, &s.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		result[s.Code] = s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating station rows: %w", err)
	}

	return result, nil
}

// Search finds stations matching a free-text query. Prefix matches on
// the code rank above substring matches on the name, then by name
// similarity. Capped at 10 results.
func (d *Directory) Search(ctx context.Context, q string) ([]models.Station, error) {
	query := `
		SELECT code, name, ST_Y(geom) AS lat, ST_X(geom) AS lon
		FROM stations
		WHERE geom IS NOT NULL
		  AND (code ILIKE $1 || '%' OR name ILIKE '%' || $1 || '%')
		ORDER BY
		  CASE WHEN code ILIKE $1 || '%' THEN 0 ELSE 1 END,
		  similarity(name, $1) DESC
		LIMIT 10
	`

	rows, err := d.pool.Query(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search stations: %w", err)
	}
	defer rows.Close()

	result := []models.Station{}
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.Code, &s.Name, &s.Lat, &s.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating station rows: %w", err)
	}

	return result, nil
}

// Corridor returns all stations within the corridor radius of the given
// route geometry, excluding the two endpoint codes, ordered by their
// projected position along the route polyline.
func (d *Directory) Corridor(ctx context.Context, geom models.Geometry, fromCode, toCode string) ([]models.Station, error) {
	geoJSON, err := json.Marshal(geom)
	if err != nil {
		return nil, fmt.Errorf("failed to encode route geometry: %w", err)
	}

	query := `
		SELECT code, name, ST_Y(geom) AS lat, ST_X(geom) AS lon
		FROM stations
		WHERE geom IS NOT NULL
		  AND code != $1 AND code != $2
		  AND ST_DWithin(
		    geom::geography,
		    ST_GeomFromGeoJSON($3)::geography,
		    $4
		  )
		ORDER BY ST_LineLocatePoint(ST_GeomFromGeoJSON($3), geom)
	`

	rows, err := d.pool.Query(ctx, query,
		strings.ToUpper(fromCode), strings.ToUpper(toCode), string(geoJSON), corridorRadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to query corridor stations: %w", err)
	}
	defer rows.Close()

	result := []models.Station{}
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.Code, &s.Name, &s.Lat, &s.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating station rows: %w", err)
	}

	return result, nil
}
