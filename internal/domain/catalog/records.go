package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Client is a customer record of the back office.
type Client struct {
	ID            int64  `json:"id"`
	LastName      string `json:"nom"`
	FirstName     string `json:"prenom"`
	Email         string `json:"email"`
	Phone         string `json:"telephone"`
	Headcount     int    `json:"nbpersonnes"`
	ArrivalDate   Date   `json:"date_arrivee"`
	DepartureDate Date   `json:"date_depart"`
}

// FullName returns "Prenom Nom".
func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Flight is a scheduled flight (vol) with per-seat fares.
type Flight struct {
	ID             int64           `json:"id"`
	Airline        string          `json:"compagnie"`
	FlightNumber   string          `json:"numero"`
	From           string          `json:"depart"`
	To             string          `json:"arrivee"`
	DepartureDate  Date            `json:"date_depart"`
	Price          decimal.Decimal `json:"prix"`
	BusinessPrice  decimal.Decimal `json:"prix_affaires"`
	SeatsAvailable int             `json:"places_disponibles"`
}

// Route returns "From → To".
func (f Flight) Route() string {
	return f.From + " → " + f.To
}

// Accommodation is a lodging (hébergement) priced per room and night.
type Accommodation struct {
	ID         int64           `json:"id"`
	Name       string          `json:"nom"`
	Location   string          `json:"lieu"`
	Category   string          `json:"categorie"`
	NightPrice decimal.Decimal `json:"prix_nuit"`
	Capacity   int             `json:"capacite"`
}

// Vehicle is a rental vehicle (voiture) priced per day.
type Vehicle struct {
	ID        int64           `json:"id"`
	Brand     string          `json:"marque"`
	Model     string          `json:"modele"`
	Plate     string          `json:"immatriculation"`
	Capacity  int             `json:"capacite"`
	DayPrice  decimal.Decimal `json:"prix_jour"`
	Available *bool           `json:"disponible"`
}

// Unavailable reports whether the backend explicitly marked the vehicle unavailable.
func (v Vehicle) Unavailable() bool {
	return v.Available != nil && !*v.Available
}

// Label returns "Marque Modele".
func (v Vehicle) Label() string {
	return strings.TrimSpace(v.Brand + " " + v.Model)
}

// Activity is an excursion or activity priced per participant.
type Activity struct {
	ID              int64           `json:"id"`
	Name            string          `json:"nom"`
	Location        string          `json:"lieu"`
	Price           decimal.Decimal `json:"prix"`
	MaxParticipants int             `json:"capacite_max"`
}
