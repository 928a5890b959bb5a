package gps

import (
	"context"
	"errors"

	"googlemaps.github.io/maps"
)

var ErrSemResultado = errors.New("matriz de distância sem resultado")

// Distancia calcula a distância de condução até as oficinas usando a
// Distance Matrix. Sem chave configurada o serviço fica nulo e a
// ordenação por proximidade usa só as distâncias que o ERP já mandou.
type Distancia struct {
	client *maps.Client
}

func NewDistancia(apiKey string) (*Distancia, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Distancia{client: client}, nil
}

// KmAte devolve a distância em km da origem ao destino. Origem e
// destino aceitam "lat,lng" ou endereço textual.
func (d *Distancia) KmAte(ctx context.Context, origem string, destino Destino) (float64, error) {
	alvo := destino.Endereco
	if coords, ok := destino.coordenadas(); ok {
		alvo = coords
	}

	req := &maps.DistanceMatrixRequest{
		Origins:      []string{origem},
		Destinations: []string{alvo},
		Mode:         maps.TravelModeDriving,
	}
	resp, err := d.client.DistanceMatrix(ctx, req)
	if err != nil {
		return 0, err
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, ErrSemResultado
	}
	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, ErrSemResultado
	}
	return float64(el.Distance.Meters) / 1000, nil
}
