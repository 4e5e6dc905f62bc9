package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"

	appconfig "github.com/motorvia/autocare-scheduler/internal/config"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

// Client creates MercadoPago checkout preferences for completed
// service invoices. A nil *Client is valid and does nothing, so the
// completion path works without payment credentials.
type Client struct {
	pref preference.Client
	log  *zap.Logger
}

func New(cfg *appconfig.Config, log *zap.Logger) (*Client, error) {
	if cfg.MercadoPagoToken == "" {
		return nil, nil
	}

	mpCfg, err := mpconfig.New(cfg.MercadoPagoToken)
	if err != nil {
		return nil, err
	}

	return &Client{
		pref: preference.NewClient(mpCfg),
		log:  log,
	}, nil
}

// CreateInvoicePreference returns the checkout URL for the completed
// appointment, or "" when payments are not configured.
func (c *Client) CreateInvoicePreference(
	ctx context.Context,
	ap *models.Appointment,
) (string, error) {

	if c == nil {
		return "", nil
	}

	req := preference.Request{
		ExternalReference: ap.Code,
		Items: []preference.ItemRequest{
			{
				ID:          fmt.Sprintf("offering-%d", ap.ServiceOfferingID),
				Title:       ap.ServiceOffering.Name,
				Description: ap.ServiceOffering.Description,
				Quantity:    1,
				UnitPrice:   ap.ServiceOffering.Price,
			},
		},
	}

	resp, err := c.pref.Create(ctx, req)
	if err != nil {
		return "", err
	}

	c.log.Info("payment preference created",
		zap.Uint("appointment_id", ap.ID),
		zap.String("preference_id", resp.ID),
	)

	return resp.InitPoint, nil
}
