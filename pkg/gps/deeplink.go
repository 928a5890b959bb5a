package gps

import (
	neturl "net/url"
	"strings"

	"promotor/validation"
)

type App string

const (
	AppGoogle App = "google"
	AppWaze   App = "waze"
)

// Destino carrega o localizador estruturado ("lat,lng") e o endereço
// textual de fallback de uma oficina.
type Destino struct {
	Localizacao string
	Endereco    string
}

func (d Destino) coordenadas() (string, bool) {
	loc := strings.TrimSpace(d.Localizacao)
	partes := strings.Split(loc, ",")
	if len(partes) != 2 {
		return "", false
	}
	for _, p := range partes {
		if _, err := validation.ParseStringToFloat(strings.TrimSpace(p)); err != nil {
			return "", false
		}
	}
	return loc, true
}

// DeepLink monta a URL de navegação do aplicativo escolhido. O destino
// preferencial é o par de coordenadas; sem ele vale o endereço textual.
func DeepLink(app App, destino Destino) string {
	switch app {
	case AppWaze:
		if coords, ok := destino.coordenadas(); ok {
			return "https://waze.com/ul?ll=" + neturl.QueryEscape(coords) + "&navigate=yes"
		}
		return "https://waze.com/ul?q=" + neturl.QueryEscape(destino.Endereco) + "&navigate=yes"
	default:
		if coords, ok := destino.coordenadas(); ok {
			return "https://www.google.com/maps/dir/?api=1&destination=" + neturl.QueryEscape(coords) + "&travelmode=driving"
		}
		return "https://www.google.com/maps/dir/?api=1&destination=" + neturl.QueryEscape(destino.Endereco) + "&travelmode=driving"
	}
}
