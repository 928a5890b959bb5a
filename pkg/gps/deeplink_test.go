package gps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepLinkGoogleComCoordenadas(t *testing.T) {
	url := DeepLink(AppGoogle, Destino{Localizacao: "-23.5505,-46.6333", Endereco: "Rua das Flores, 123"})
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=-23.5505%2C-46.6333&travelmode=driving", url)
}

func TestDeepLinkGoogleFallbackEndereco(t *testing.T) {
	url := DeepLink(AppGoogle, Destino{Endereco: "Rua das Flores, 123"})
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=Rua+das+Flores%2C+123&travelmode=driving", url)
}

func TestDeepLinkWazeComCoordenadas(t *testing.T) {
	url := DeepLink(AppWaze, Destino{Localizacao: "-23.5505,-46.6333"})
	assert.Equal(t, "https://waze.com/ul?ll=-23.5505%2C-46.6333&navigate=yes", url)
}

func TestDeepLinkWazeFallbackEndereco(t *testing.T) {
	url := DeepLink(AppWaze, Destino{Localizacao: "sem virgula", Endereco: "Av. Brasil, 456"})
	assert.Equal(t, "https://waze.com/ul?q=Av.+Brasil%2C+456&navigate=yes", url)
}

func TestDeepLinkEnderecoComVirgulaNaoValeComoCoordenada(t *testing.T) {
	url := DeepLink(AppWaze, Destino{Localizacao: "Av. Brasil, 456", Endereco: "Av. Brasil, 456"})
	assert.Equal(t, "https://waze.com/ul?q=Av.+Brasil%2C+456&navigate=yes", url)
}

func TestDeepLinkAppDesconhecidoCaiNoGoogle(t *testing.T) {
	url := DeepLink(App("outro"), Destino{Localizacao: "-1.0,-2.0"})
	assert.Contains(t, url, "google.com/maps")
}
