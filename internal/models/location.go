package models

// Location represents a single submitted geolocation record, including the
// server-computed creation time and the reverse-geocoded address split into its
// comma-separated components.
type Location struct {
	ID               int64   `json:"id"`
	Bezirk           string  `json:"bezirk"`
	Erstellungsdatum string  `json:"erstellungsdatum"`
	Erstellungszeit  string  `json:"erstellungszeit"`
	XCoord           float64 `json:"x_coord"`
	YCoord           float64 `json:"y_coord"`
	Sonstiges        string  `json:"sonstiges"`
	Adresse          string  `json:"adresse"`
	Hausnummer       string  `json:"hausnummer"`
	Strasse          string  `json:"strasse"`
	BezirkSpez       string  `json:"bezirk_spez"`
	Ort              string  `json:"ort"`
	Bundesland       string  `json:"bundesland"`
	PLZ              string  `json:"plz"`
	Land             string  `json:"land"`
}
