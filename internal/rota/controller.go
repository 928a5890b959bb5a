package rota

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"promotor/internal/feedback"
	"promotor/internal/historico"
	"promotor/pkg/gps"
)

var (
	ErrRotaNaoEncontrada = errors.New("rota não encontrada")
	ErrRotaEncerrada     = errors.New("rota já encerrada")
	ErrTransicaoInvalida = errors.New("transição inválida para o status atual")
	ErrRotaAtiva         = errors.New("já existe uma rota a caminho ou em andamento")
	ErrObsObrigatoria    = errors.New("cancelamento exige uma observação")
	ErrOperacaoFalhou    = errors.New("operação falhou; use retry")
)

type Op string

const (
	OpNavegar  Op = "navegar"
	OpCheckin  Op = "checkin"
	OpCancelar Op = "cancelar"
)

func (o Op) Valida() bool {
	switch o {
	case OpNavegar, OpCheckin, OpCancelar:
		return true
	}
	return false
}

// StatusClient é o colaborador que persiste a transição no ERP.
type StatusClient interface {
	AtualizarRota(ctx context.Context, idRota int64, upd RotaUpdate) error
}

// Navegador abre o aplicativo de navegação externo. Fire-and-forget.
type Navegador interface {
	Abrir(app gps.App, url string)
}

type Evento struct {
	IDRota int64     `json:"id_rota"`
	De     Status    `json:"de"`
	Para   Status    `json:"para"`
	Quando time.Time `json:"quando"`
}

type Notifier interface {
	TransmitirTransicao(ev Evento)
}

type TransicaoResultado struct {
	Rota         Rota   `json:"rota"`
	NavegacaoURL string `json:"navegacao_url,omitempty"`
}

type transicao struct {
	IDRota   int64
	Para     Status
	Obs      string
	Redirect *Redirect
	App      gps.App
}

// Controller valida e executa as transições do ciclo de vida. Cada
// operação de cada rota tem o seu próprio embrulho de feedback, então
// um checkin pendente na rota A não interfere num cancelamento na B.
//
// O estado local só muda depois da chamada externa resolver; falha
// deixa tudo como estava e fica disponível para retry.
type Controller struct {
	store    *Store
	client   StatusClient
	hist     historico.InterfaceRepository
	notifier Notifier
	nav      Navegador
	opts     feedback.Options
	log      *zap.Logger
	agora    func() time.Time

	mu    sync.Mutex
	acoes map[acaoKey]*feedback.Action[transicao, TransicaoResultado]
}

type acaoKey struct {
	idRota int64
	op     Op
}

func NewController(
	store *Store,
	client StatusClient,
	hist historico.InterfaceRepository,
	notifier Notifier,
	nav Navegador,
	opts feedback.Options,
	log *zap.Logger,
) *Controller {
	return &Controller{
		store:    store,
		client:   client,
		hist:     hist,
		notifier: notifier,
		nav:      nav,
		opts:     opts,
		log:      log,
		agora:    time.Now,
		acoes:    map[acaoKey]*feedback.Action[transicao, TransicaoResultado]{},
	}
}

// IrACaminho move BACKLOG -> A CAMINHO e abre a navegação externa.
// Guarda dura: com outra rota ativa a transição é recusada aqui, não
// só no botão desabilitado do app.
func (c *Controller) IrACaminho(ctx context.Context, idRota int64, app gps.App) (TransicaoResultado, error) {
	if err := c.guardar(idRota, StatusBacklog); err != nil {
		return TransicaoResultado{}, err
	}
	if ativa, ok := c.store.Ativa(); ok && ativa.IDRotaPromotor != idRota {
		return TransicaoResultado{}, ErrRotaAtiva
	}

	res := c.acao(idRota, OpNavegar).Execute(ctx, transicao{
		IDRota: idRota,
		Para:   StatusACaminho,
		App:    app,
	})
	if !res.Ok {
		return TransicaoResultado{}, ErrOperacaoFalhou
	}
	return res.Value, nil
}

// Checkin move A CAMINHO -> EM ANDAMENTO com o horário de chegada
// gerado no momento da chamada.
func (c *Controller) Checkin(ctx context.Context, idRota int64) (TransicaoResultado, error) {
	if err := c.guardar(idRota, StatusACaminho); err != nil {
		return TransicaoResultado{}, err
	}

	res := c.acao(idRota, OpCheckin).Execute(ctx, transicao{
		IDRota: idRota,
		Para:   StatusEmAndamento,
	})
	if !res.Ok {
		return TransicaoResultado{}, ErrOperacaoFalhou
	}
	return res.Value, nil
}

// Cancelar encerra qualquer rota não terminal. A observação é
// obrigatória e barra a chamada externa antes do feedback começar.
func (c *Controller) Cancelar(ctx context.Context, idRota int64, obs string) (TransicaoResultado, error) {
	if obs == "" {
		return TransicaoResultado{}, ErrObsObrigatoria
	}
	r, ok := c.store.Get(idRota)
	if !ok {
		return TransicaoResultado{}, ErrRotaNaoEncontrada
	}
	if r.Status.Terminal() {
		return TransicaoResultado{}, ErrRotaEncerrada
	}

	res := c.acao(idRota, OpCancelar).Execute(ctx, transicao{
		IDRota: idRota,
		Para:   StatusCancelado,
		Obs:    obs,
	})
	if !res.Ok {
		return TransicaoResultado{}, ErrOperacaoFalhou
	}
	return res.Value, nil
}

// Finalizar move EM ANDAMENTO -> FINALIZADO. É chamado pela sessão de
// pesquisa dentro do embrulho de feedback dela, por isso executa
// direto, sem um embrulho próprio.
func (c *Controller) Finalizar(ctx context.Context, idRota int64, obs string, redirect *Redirect) (TransicaoResultado, error) {
	if err := c.guardar(idRota, StatusEmAndamento); err != nil {
		return TransicaoResultado{}, err
	}

	return c.executar(ctx, transicao{
		IDRota:   idRota,
		Para:     StatusFinalizado,
		Obs:      obs,
		Redirect: redirect,
	})
}

// Feedback, Retry e Reset só olham ações que alguma transição já
// criou; consultar id ou op desconhecidos não aloca nada.
func (c *Controller) Feedback(idRota int64, op Op) feedback.State {
	if a, ok := c.acaoExistente(idRota, op); ok {
		return a.State()
	}
	return feedback.StateIdle
}

// Retry reexecuta a última invocação da operação com os mesmos
// argumentos da tentativa que falhou.
func (c *Controller) Retry(ctx context.Context, idRota int64, op Op) (TransicaoResultado, error) {
	a, ok := c.acaoExistente(idRota, op)
	if !ok {
		return TransicaoResultado{}, ErrOperacaoFalhou
	}
	res := a.Retry(ctx)
	if !res.Ok {
		return TransicaoResultado{}, ErrOperacaoFalhou
	}
	return res.Value, nil
}

func (c *Controller) Reset(idRota int64, op Op) {
	if a, ok := c.acaoExistente(idRota, op); ok {
		a.Reset()
	}
}

func (c *Controller) guardar(idRota int64, esperado Status) error {
	r, ok := c.store.Get(idRota)
	if !ok {
		return ErrRotaNaoEncontrada
	}
	if r.Status.Terminal() {
		return ErrRotaEncerrada
	}
	if r.Status != esperado {
		return ErrTransicaoInvalida
	}
	return nil
}

func (c *Controller) acaoExistente(idRota int64, op Op) (*feedback.Action[transicao, TransicaoResultado], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.acoes[acaoKey{idRota: idRota, op: op}]
	return a, ok
}

func (c *Controller) acao(idRota int64, op Op) *feedback.Action[transicao, TransicaoResultado] {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := acaoKey{idRota: idRota, op: op}
	if a, ok := c.acoes[key]; ok {
		return a
	}
	a := feedback.NewAction(c.executar, c.opts)
	c.acoes[key] = a
	return a
}

func (c *Controller) executar(ctx context.Context, t transicao) (TransicaoResultado, error) {
	r, ok := c.store.Get(t.IDRota)
	if !ok {
		return TransicaoResultado{}, ErrRotaNaoEncontrada
	}
	de := r.Status
	agora := c.agora()

	upd := RotaUpdate{Status: t.Para}
	switch t.Para {
	case StatusEmAndamento:
		checkin := agora.UTC().Format(time.RFC3339)
		upd.CheckinTime = &checkin
	case StatusFinalizado:
		success := true
		done := agora.UTC().Format(time.RFC3339)
		upd.Success = &success
		upd.DoneAt = &done
		upd.Redirect = t.Redirect
		if t.Obs != "" {
			upd.Obs = &t.Obs
		}
	case StatusCancelado:
		done := agora.UTC().Format(time.RFC3339)
		upd.DoneAt = &done
		upd.Obs = &t.Obs
	}

	if c.client != nil {
		if err := c.client.AtualizarRota(ctx, t.IDRota, upd); err != nil {
			c.log.Warn("atualização de rota falhou no ERP",
				zap.Int64("id_rota", t.IDRota),
				zap.String("para", string(t.Para)),
				zap.Error(err),
			)
			falhasOperacao.WithLabelValues(string(t.Para)).Inc()
			return TransicaoResultado{}, err
		}
	}

	c.store.Apply(t.IDRota, func(r *Rota) {
		r.Status = t.Para
		switch t.Para {
		case StatusEmAndamento:
			checkin := agora
			r.CheckinTime = &checkin
		case StatusFinalizado:
			success := true
			done := agora
			r.Success = &success
			r.DoneAt = &done
			r.Redirect = t.Redirect
			if t.Obs != "" {
				obs := t.Obs
				r.Obs = &obs
			}
		case StatusCancelado:
			done := agora
			obs := t.Obs
			r.DoneAt = &done
			r.Obs = &obs
		}
	})

	if err := c.hist.RegistrarTransicao(ctx, historico.Transicao{
		IDRota:   t.IDRota,
		De:       string(de),
		Para:     string(t.Para),
		Obs:      t.Obs,
		CriadoEm: agora,
	}); err != nil {
		c.log.Warn("falha ao registrar transição no histórico", zap.Error(err))
	}

	transicoesTotal.WithLabelValues(string(t.Para)).Inc()

	if c.notifier != nil {
		c.notifier.TransmitirTransicao(Evento{
			IDRota: t.IDRota,
			De:     de,
			Para:   t.Para,
			Quando: agora,
		})
	}

	resultado := TransicaoResultado{}
	atualizada, _ := c.store.Get(t.IDRota)
	resultado.Rota = atualizada

	if t.Para == StatusACaminho {
		url := gps.DeepLink(t.App, gps.Destino{
			Localizacao: r.Oficina.Localizacao,
			Endereco:    r.Oficina.Endereco,
		})
		resultado.NavegacaoURL = url
		if c.nav != nil {
			go c.nav.Abrir(t.App, url)
		}
	}

	return resultado, nil
}
