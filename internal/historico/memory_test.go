package historico

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryTransicoes(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	agora := time.Now()

	require.NoError(t, repo.RegistrarTransicao(ctx, Transicao{IDRota: 1, De: "BACKLOG", Para: "A CAMINHO", CriadoEm: agora}))
	require.NoError(t, repo.RegistrarTransicao(ctx, Transicao{IDRota: 2, De: "BACKLOG", Para: "CANCELADO", Obs: "fechada", CriadoEm: agora}))
	require.NoError(t, repo.RegistrarTransicao(ctx, Transicao{IDRota: 1, De: "A CAMINHO", Para: "EM ANDAMENTO", CriadoEm: agora}))

	transicoes, err := repo.TransicoesPorRota(ctx, 1)
	require.NoError(t, err)
	require.Len(t, transicoes, 2)
	assert.Equal(t, "A CAMINHO", transicoes[0].Para)
	assert.Equal(t, "EM ANDAMENTO", transicoes[1].Para)

	vazio, err := repo.TransicoesPorRota(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, vazio)
}

func TestMemoryRepositoryResultados(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.RegistrarResultado(ctx, Resultado{IDRota: 1, IDPergunta: "q1", Resposta: "sim"}))
	require.NoError(t, repo.RegistrarResultado(ctx, Resultado{IDRota: 1, IDPergunta: "q2", Resposta: "12"}))

	resultados := repo.Resultados()
	require.Len(t, resultados, 2)
	assert.Equal(t, "q1", resultados[0].IDPergunta)
	assert.NotZero(t, resultados[0].ID)
}
