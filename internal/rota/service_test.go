package rota

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCampanhaClient struct {
	response CampanhaAtivaResponse
	err      error
}

func (f *fakeCampanhaClient) CampanhaAtiva(_ context.Context, _ int64) (CampanhaAtivaResponse, error) {
	return f.response, f.err
}

func respostaERP() CampanhaAtivaResponse {
	var resp CampanhaAtivaResponse
	resp.Data.IDCampanha = 7
	resp.Data.Nome = "Campanha Lubrax"
	resp.Data.Objetivo = "Visitar oficinas parceiras"
	resp.Data.Rotas = []RotaAPI{
		{
			IDRotaPromotor: 11,
			IDOficina:      1,
			Status:         StatusBacklog,
			Oficina: OficinaAPI{
				IDOficina:    1,
				NomeFantasia: "Auto Center Silva",
				Endereco:     "Rua das Flores",
				Numero:       "123",
				Bairro:       "Centro",
				Cidade:       "Sao Paulo",
				Estado:       "SP",
				Localizacao:  "-23.5505,-46.6333",
			},
		},
		{
			IDRotaPromotor: 12,
			Status:         Status("FINALIZADO"),
			CheckinTime:    "2026-08-30T09:15:00Z",
			DoneAt:         "2026-08-30T10:00:00Z",
			Obs:            "visita ok",
			Redirect:       "SAC",
			Oficina:        OficinaAPI{IDOficina: 2, NomeFantasia: "Oficina Brasil"},
		},
	}
	return resp
}

func TestCarregarCampanhaAtivaNormaliza(t *testing.T) {
	client := &fakeCampanhaClient{response: respostaERP()}
	store := NewStore()
	svc := NewRotasService(store, client, nil, zap.NewNop())

	dto, err := svc.CarregarCampanhaAtiva(context.Background(), 1, "")
	require.NoError(t, err)

	assert.Equal(t, int64(7), dto.Campanha.IDCampanha)
	assert.Equal(t, "Visitar oficinas parceiras", dto.Campanha.Objetivo)

	r, ok := store.Get(11)
	require.True(t, ok)
	assert.Equal(t, "Auto Center Silva", r.Oficina.Nome)
	assert.Equal(t, "Rua das Flores, 123, Centro, Sao Paulo, SP", r.Oficina.Endereco)
	assert.Equal(t, dto.Campanha, r.Campanha)

	feita, ok := store.Get(12)
	require.True(t, ok)
	require.NotNil(t, feita.CheckinTime)
	require.NotNil(t, feita.DoneAt)
	require.NotNil(t, feita.Obs)
	assert.Equal(t, "visita ok", *feita.Obs)
	require.NotNil(t, feita.Redirect)
	assert.Equal(t, RedirectSAC, *feita.Redirect)

	assert.Equal(t, 2, dto.Resumo.Total)
	assert.Equal(t, 1, dto.Resumo.Pendentes)
	assert.Equal(t, 1, dto.Resumo.Concluidas)
}

func TestCarregarCampanhaAtivaOffline(t *testing.T) {
	store := NewStore()
	svc := NewRotasService(store, nil, nil, zap.NewNop())

	dto, err := svc.CarregarCampanhaAtiva(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Len(t, dto.Rotas, 4)
	assert.Equal(t, 4, dto.Resumo.Total)

	assert.Equal(t, int64(1), dto.Rotas[0].IDRotaPromotor, "a mais perto vem primeiro")
}

func TestCarregarCampanhaSubstituiColecao(t *testing.T) {
	client := &fakeCampanhaClient{response: respostaERP()}
	store := NewStore()
	store.ReplaceAll(MockRotas())
	svc := NewRotasService(store, client, nil, zap.NewNop())

	_, err := svc.CarregarCampanhaAtiva(context.Background(), 1, "")
	require.NoError(t, err)

	_, ok := store.Get(1)
	assert.False(t, ok, "a carga anterior some inteira")
	_, ok = store.Get(11)
	assert.True(t, ok)
}
