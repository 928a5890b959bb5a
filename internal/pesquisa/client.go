package pesquisa

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

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

// Perguntas busca o questionário da campanha no ERP. Campanha sem
// bloco de perguntas vem como lista vazia, não como erro.
func (c *Client) Perguntas(ctx context.Context, idCampanha int64) ([]Pergunta, error) {
	var response CampanhaDetalheResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&response).
		Get(fmt.Sprintf("campanha/%d", idCampanha))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("campanha %d: upstream respondeu %d", idCampanha, resp.StatusCode())
	}

	perguntas := make([]Pergunta, 0, len(response.Data.CampanhaPerguntas))
	for _, api := range response.Data.CampanhaPerguntas {
		var p Pergunta
		p.ParseFromPerguntaAPI(api)
		perguntas = append(perguntas, p)
	}
	return perguntas, nil
}

func (c *Client) EnviarResultado(ctx context.Context, r CampanhaResult) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(r).
		Post("campanha/resultado")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("resultado da pergunta %s: upstream respondeu %d", r.IDPergunta, resp.StatusCode())
	}
	return nil
}
