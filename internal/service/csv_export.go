package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"standort-api/internal/models"
)

// csvHeader is the fixed export column order. Values are joined with plain
// commas and not quoted, so commas inside free-text fields shift columns.
const csvHeader = "ID,Bezirk,Erstellungsdatum,Erstellungszeit,x_coord,y_coord,sonstiges,Adresse,Hausnummer,Strasse,Bezirk_Spez,Ort,Bundesland,PLZ,Land"

// ExportCSV serializes every record into CSV text: the header row plus one
// line per record. Returns ErrNoRecords when the table is empty.
func (s *LocationService) ExportCSV(ctx context.Context) (string, error) {
	locations, err := s.repo.All(ctx)
	if err != nil {
		return "", fmt.Errorf("service: failed to fetch locations for export: %w", err)
	}
	if len(locations) == 0 {
		return "", ErrNoRecords
	}

	lines := make([]string, 0, len(locations)+1)
	lines = append(lines, csvHeader)
	for _, loc := range locations {
		lines = append(lines, csvLine(loc))
	}

	return strings.Join(lines, "\n"), nil
}

func csvLine(loc models.Location) string {
	return strings.Join([]string{
		strconv.FormatInt(loc.ID, 10),
		loc.Bezirk,
		loc.Erstellungsdatum,
		loc.Erstellungszeit,
		strconv.FormatFloat(loc.XCoord, 'f', -1, 64),
		strconv.FormatFloat(loc.YCoord, 'f', -1, 64),
		loc.Sonstiges,
		loc.Adresse,
		loc.Hausnummer,
		loc.Strasse,
		loc.BezirkSpez,
		loc.Ort,
		loc.Bundesland,
		loc.PLZ,
		loc.Land,
	}, ",")
}
