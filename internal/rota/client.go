package rota

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"promotor/pkg/gps"
)

// Client fala com o ERP. Base URL vazia significa modo offline e o
// container nem o constrói.
type Client struct {
	httpClient *resty.Client
	log        *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{httpClient: httpClient, log: log}
}

func (c *Client) CampanhaAtiva(ctx context.Context, idPromotor int64) (CampanhaAtivaResponse, error) {
	var response CampanhaAtivaResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("ID_PROMOTOR", fmt.Sprintf("%d", idPromotor)).
		SetResult(&response).
		Get("campanha/ativa")
	if err != nil {
		return CampanhaAtivaResponse{}, err
	}
	if resp.IsError() {
		return CampanhaAtivaResponse{}, fmt.Errorf("campanha ativa: upstream respondeu %d", resp.StatusCode())
	}
	return response, nil
}

func (c *Client) AtualizarRota(ctx context.Context, idRota int64, upd RotaUpdate) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(upd).
		Put(fmt.Sprintf("rota/%d/options", idRota))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("atualizar rota %d: upstream respondeu %d", idRota, resp.StatusCode())
	}
	return nil
}

// LogNavegador é o abridor de navegação padrão do backend: registra a
// URL que o app deve abrir. O deep link em si volta na resposta HTTP.
type LogNavegador struct {
	Log *zap.Logger
}

func (n *LogNavegador) Abrir(app gps.App, url string) {
	n.Log.Info("navegação externa aberta",
		zap.String("app", string(app)),
		zap.String("url", url),
	)
}
