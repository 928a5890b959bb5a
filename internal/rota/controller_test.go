package rota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"promotor/internal/feedback"
	"promotor/internal/historico"
	"promotor/pkg/gps"
)

type fakeStatusClient struct {
	chamadas []RotaUpdate
	err      error
}

func (f *fakeStatusClient) AtualizarRota(_ context.Context, _ int64, upd RotaUpdate) error {
	f.chamadas = append(f.chamadas, upd)
	return f.err
}

type fakeNavegador struct {
	aberto chan string
}

func (f *fakeNavegador) Abrir(_ gps.App, url string) {
	f.aberto <- url
}

func novoControllerDeTeste(client StatusClient) (*Controller, *Store) {
	store := NewStore()
	store.ReplaceAll(MockRotas())
	c := NewController(
		store,
		client,
		historico.NewMemoryRepository(),
		nil,
		nil,
		feedback.Options{},
		zap.NewNop(),
	)
	return c, store
}

func TestCicloCompletoDaVisita(t *testing.T) {
	client := &fakeStatusClient{}
	c, store := novoControllerDeTeste(client)

	res, err := c.IrACaminho(context.Background(), 1, gps.AppGoogle)
	require.NoError(t, err)
	assert.Equal(t, StatusACaminho, res.Rota.Status)
	assert.Contains(t, res.NavegacaoURL, "google.com/maps")

	res, err = c.Checkin(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StatusEmAndamento, res.Rota.Status)
	require.NotNil(t, res.Rota.CheckinTime)

	redirect := RedirectVendas
	res, err = c.Finalizar(context.Background(), 1, "visita ok", &redirect)
	require.NoError(t, err)
	assert.Equal(t, StatusFinalizado, res.Rota.Status)
	require.NotNil(t, res.Rota.Success)
	assert.True(t, *res.Rota.Success)
	require.NotNil(t, res.Rota.DoneAt)
	require.NotNil(t, res.Rota.Redirect)
	assert.Equal(t, RedirectVendas, *res.Rota.Redirect)

	require.Len(t, client.chamadas, 3)
	assert.Equal(t, StatusACaminho, client.chamadas[0].Status)
	assert.Equal(t, StatusEmAndamento, client.chamadas[1].Status)
	assert.Equal(t, StatusFinalizado, client.chamadas[2].Status)

	r, _ := store.Get(1)
	assert.Equal(t, StatusFinalizado, r.Status)
}

func TestIrACaminhoComOutraRotaAtiva(t *testing.T) {
	c, store := novoControllerDeTeste(&fakeStatusClient{})
	store.Apply(2, func(r *Rota) { r.Status = StatusACaminho })

	_, err := c.IrACaminho(context.Background(), 1, gps.AppGoogle)
	assert.ErrorIs(t, err, ErrRotaAtiva)

	r, _ := store.Get(1)
	assert.Equal(t, StatusBacklog, r.Status, "a guarda recusa antes de qualquer efeito")
}

func TestTransicaoForaDeOrdem(t *testing.T) {
	c, _ := novoControllerDeTeste(&fakeStatusClient{})

	_, err := c.Checkin(context.Background(), 1)
	assert.ErrorIs(t, err, ErrTransicaoInvalida, "checkin direto do backlog não existe")

	_, err = c.Finalizar(context.Background(), 1, "", nil)
	assert.ErrorIs(t, err, ErrTransicaoInvalida)
}

func TestRotaTerminalRecusaTudo(t *testing.T) {
	client := &fakeStatusClient{}
	c, store := novoControllerDeTeste(client)
	store.Apply(1, func(r *Rota) { r.Status = StatusFinalizado })

	_, err := c.IrACaminho(context.Background(), 1, gps.AppGoogle)
	assert.ErrorIs(t, err, ErrRotaEncerrada)

	_, err = c.Cancelar(context.Background(), 1, "motivo")
	assert.ErrorIs(t, err, ErrRotaEncerrada)

	assert.Empty(t, client.chamadas, "rota encerrada não gera chamada externa")
}

func TestConsultaDeFeedbackNaoCriaAcao(t *testing.T) {
	c, _ := novoControllerDeTeste(&fakeStatusClient{})

	assert.Equal(t, feedback.StateIdle, c.Feedback(999, OpCheckin))
	assert.Equal(t, feedback.StateIdle, c.Feedback(1, Op("qualquer-coisa")))

	_, err := c.Retry(context.Background(), 999, OpCheckin)
	assert.ErrorIs(t, err, ErrOperacaoFalhou)

	c.Reset(999, OpCancelar)

	assert.Empty(t, c.acoes, "consultas não alocam embrulhos")
}

func TestCancelarExigeObs(t *testing.T) {
	client := &fakeStatusClient{}
	c, _ := novoControllerDeTeste(client)

	_, err := c.Cancelar(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrObsObrigatoria)
	assert.Empty(t, client.chamadas)
	assert.Equal(t, feedback.StateIdle, c.Feedback(1, OpCancelar), "a validação barra antes do feedback")
}

func TestCancelarDeQualquerEstadoNaoTerminal(t *testing.T) {
	c, store := novoControllerDeTeste(&fakeStatusClient{})
	store.Apply(1, func(r *Rota) { r.Status = StatusEmAndamento })

	res, err := c.Cancelar(context.Background(), 1, "oficina fechada")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelado, res.Rota.Status)
	require.NotNil(t, res.Rota.Obs)
	assert.Equal(t, "oficina fechada", *res.Rota.Obs)
}

func TestFalhaExternaNaoMudaEstadoLocal(t *testing.T) {
	client := &fakeStatusClient{err: errors.New("erp fora do ar")}
	c, store := novoControllerDeTeste(client)

	_, err := c.IrACaminho(context.Background(), 1, gps.AppGoogle)
	assert.ErrorIs(t, err, ErrOperacaoFalhou)

	r, _ := store.Get(1)
	assert.Equal(t, StatusBacklog, r.Status)
	assert.Equal(t, feedback.StateError, c.Feedback(1, OpNavegar))
}

func TestRetryRepeteTransicaoQueFalhou(t *testing.T) {
	client := &fakeStatusClient{err: errors.New("erp fora do ar")}
	c, store := novoControllerDeTeste(client)

	_, err := c.IrACaminho(context.Background(), 1, gps.AppGoogle)
	require.ErrorIs(t, err, ErrOperacaoFalhou)

	client.err = nil
	res, err := c.Retry(context.Background(), 1, OpNavegar)
	require.NoError(t, err)
	assert.Equal(t, StatusACaminho, res.Rota.Status)
	assert.Equal(t, feedback.StateSuccess, c.Feedback(1, OpNavegar))

	r, _ := store.Get(1)
	assert.Equal(t, StatusACaminho, r.Status)
}

func TestModoOfflineMutaSoLocal(t *testing.T) {
	c, store := novoControllerDeTeste(nil)

	res, err := c.IrACaminho(context.Background(), 1, gps.AppWaze)
	require.NoError(t, err)
	assert.Equal(t, StatusACaminho, res.Rota.Status)
	assert.Contains(t, res.NavegacaoURL, "waze.com")

	r, _ := store.Get(1)
	assert.Equal(t, StatusACaminho, r.Status)
}

func TestNavegacaoDispara(t *testing.T) {
	nav := &fakeNavegador{aberto: make(chan string, 1)}
	store := NewStore()
	store.ReplaceAll(MockRotas())
	c := NewController(store, nil, historico.NewMemoryRepository(), nil, nav, feedback.Options{}, zap.NewNop())

	res, err := c.IrACaminho(context.Background(), 1, gps.AppGoogle)
	require.NoError(t, err)

	select {
	case url := <-nav.aberto:
		assert.Equal(t, res.NavegacaoURL, url)
	case <-time.After(time.Second):
		t.Fatal("navegador externo não foi acionado")
	}
}

func TestHorarioDeterministico(t *testing.T) {
	fixo := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	client := &fakeStatusClient{}
	c, store := novoControllerDeTeste(client)
	c.agora = func() time.Time { return fixo }
	store.Apply(1, func(r *Rota) { r.Status = StatusACaminho })

	res, err := c.Checkin(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, res.Rota.CheckinTime)
	assert.Equal(t, fixo, *res.Rota.CheckinTime)

	require.Len(t, client.chamadas, 1)
	require.NotNil(t, client.chamadas[0].CheckinTime)
	assert.Equal(t, "2026-03-10T14:30:00Z", *client.chamadas[0].CheckinTime)
}
