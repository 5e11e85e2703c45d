package application

import (
	"context"

	"github.com/tsaratour/service-booking/internal/domain/catalog"
	"go.uber.org/zap"
)

// ClientDTO is the API representation of a back-office client.
type ClientDTO struct {
	ID            int64        `json:"id"`
	FullName      string       `json:"full_name"`
	Email         string       `json:"email,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	Headcount     int          `json:"nbpersonnes"`
	ArrivalDate   catalog.Date `json:"date_arrivee"`
	DepartureDate catalog.Date `json:"date_depart"`
}

// ClientService looks up clients for the first wizard step.
type ClientService struct {
	catalog Catalog
	logger  *zap.Logger
}

// NewClientService creates a new ClientService.
func NewClientService(catalogReader Catalog, logger *zap.Logger) *ClientService {
	return &ClientService{catalog: catalogReader, logger: logger}
}

// ListClients returns clients matching search.
func (s *ClientService) ListClients(ctx context.Context, search string) ([]ClientDTO, error) {
	clients, err := s.catalog.ListClients(ctx, search)
	if err != nil {
		return nil, err
	}
	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = toClientDTO(c)
	}
	return dtos, nil
}

// GetClient returns one client.
func (s *ClientService) GetClient(ctx context.Context, id int64) (*ClientDTO, error) {
	c, err := s.catalog.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toClientDTO(*c)
	return &dto, nil
}

func toClientDTO(c catalog.Client) ClientDTO {
	return ClientDTO{
		ID:            c.ID,
		FullName:      c.FullName(),
		Email:         c.Email,
		Phone:         c.Phone,
		Headcount:     c.Headcount,
		ArrivalDate:   c.ArrivalDate,
		DepartureDate: c.DepartureDate,
	}
}
