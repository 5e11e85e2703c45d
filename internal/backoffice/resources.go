package backoffice

import (
	"context"
	"net/url"

	"github.com/tsaratour/service-booking/internal/domain/catalog"
)

// Collection paths of the backend.
const (
	PathClients        = "/clients/"
	PathReservations   = "/reservations/"
	PathInvoices       = "/factures/"
	PathAccommodations = "/hebergements/"
	PathVehicles       = "/voitures/"
	PathFlights        = "/vols/"
	PathActivities     = "/activites/"
	PathLogin          = "/auth/login/"
)

// ListClients returns clients, optionally filtered by a search term.
func (c *Client) ListClients(ctx context.Context, search string) ([]catalog.Client, error) {
	path := PathClients
	if search != "" {
		path += "?" + url.Values{"search": {search}}.Encode()
	}
	return list[catalog.Client](ctx, c, path)
}

// GetClient returns one client.
func (c *Client) GetClient(ctx context.Context, id int64) (*catalog.Client, error) {
	return get[catalog.Client](ctx, c, resourcePath(PathClients, id))
}

// GetFlight returns one flight.
func (c *Client) GetFlight(ctx context.Context, id int64) (*catalog.Flight, error) {
	return get[catalog.Flight](ctx, c, resourcePath(PathFlights, id))
}

// GetAccommodation returns one accommodation.
func (c *Client) GetAccommodation(ctx context.Context, id int64) (*catalog.Accommodation, error) {
	return get[catalog.Accommodation](ctx, c, resourcePath(PathAccommodations, id))
}

// GetVehicle returns one vehicle.
func (c *Client) GetVehicle(ctx context.Context, id int64) (*catalog.Vehicle, error) {
	return get[catalog.Vehicle](ctx, c, resourcePath(PathVehicles, id))
}

// GetActivity returns one activity.
func (c *Client) GetActivity(ctx context.Context, id int64) (*catalog.Activity, error) {
	return get[catalog.Activity](ctx, c, resourcePath(PathActivities, id))
}
