package pesquisa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"promotor/internal/feedback"
	"promotor/internal/historico"
	"promotor/internal/rota"
)

var (
	ErrSemSessao          = errors.New("nenhuma sessão de pesquisa aberta para a rota")
	ErrPesquisaCarregando = errors.New("questionário ainda carregando")
	ErrPesquisaIncompleta = errors.New("pesquisa incompleta: responda todas as perguntas")
	ErrRotaSemCheckin     = errors.New("pesquisa exige rota em andamento")
)

type Op string

const (
	OpCarregar Op = "pesquisa"
	OpEnviar   Op = "enviar"
)

func (o Op) Valida() bool {
	return o == OpCarregar || o == OpEnviar
}

type PerguntasClient interface {
	Perguntas(ctx context.Context, idCampanha int64) ([]Pergunta, error)
	EnviarResultado(ctx context.Context, r CampanhaResult) error
}

// Uploader resolve um binário pendente para uma URL durável.
type Uploader interface {
	Upload(ctx context.Context, conteudo []byte, nome, contentType, campanha string) (string, error)
}

type cargaArgs struct {
	IDRota     int64
	IDCampanha int64
	Token      uint64
}

type envioArgs struct {
	IDRota   int64
	Token    uint64
	Obs      string
	Redirect *rota.Redirect
}

// Service administra as sessões de pesquisa, uma por rota em andamento.
// Carga e envio têm cada um o seu embrulho de feedback por rota.
type Service struct {
	client     PerguntasClient
	rdb        *redis.Client
	uploader   Uploader
	controller *rota.Controller
	store      *rota.Store
	hist       historico.InterfaceRepository
	opts       feedback.Options
	log        *zap.Logger
	agora      func() time.Time

	mu          sync.Mutex
	seq         uint64
	sessoes     map[int64]*Sessao
	abrirAcoes  map[int64]*feedback.Action[cargaArgs, []Pergunta]
	enviarAcoes map[int64]*feedback.Action[envioArgs, []CampanhaResult]
}

func NewPesquisaService(
	client PerguntasClient,
	rdb *redis.Client,
	uploader Uploader,
	controller *rota.Controller,
	store *rota.Store,
	hist historico.InterfaceRepository,
	opts feedback.Options,
	log *zap.Logger,
) *Service {
	return &Service{
		client:      client,
		rdb:         rdb,
		uploader:    uploader,
		controller:  controller,
		store:       store,
		hist:        hist,
		opts:        opts,
		log:         log,
		agora:       time.Now,
		sessoes:     map[int64]*Sessao{},
		abrirAcoes:  map[int64]*feedback.Action[cargaArgs, []Pergunta]{},
		enviarAcoes: map[int64]*feedback.Action[envioArgs, []CampanhaResult]{},
	}
}

type AberturaDTO struct {
	Perguntas []Pergunta `json:"perguntas"`
}

// Abrir começa uma sessão nova para a rota: respostas anteriores são
// descartadas e o questionário da campanha é carregado. Abrir de novo
// invalida a carga da sessão anterior pelo token.
func (s *Service) Abrir(ctx context.Context, idRota int64) (AberturaDTO, error) {
	r, ok := s.store.Get(idRota)
	if !ok {
		return AberturaDTO{}, rota.ErrRotaNaoEncontrada
	}
	if r.Status != rota.StatusEmAndamento {
		return AberturaDTO{}, ErrRotaSemCheckin
	}

	s.mu.Lock()
	s.seq++
	sess := novaSessao(idRota, s.seq)
	s.sessoes[idRota] = sess
	s.mu.Unlock()

	res := s.abrirAcao(idRota).Execute(ctx, cargaArgs{
		IDRota:     idRota,
		IDCampanha: r.Campanha.IDCampanha,
		Token:      sess.Token(),
	})
	if !res.Ok {
		return AberturaDTO{}, rota.ErrOperacaoFalhou
	}
	return AberturaDTO{Perguntas: res.Value}, nil
}

// Responder grava uma resposta na sessão aberta da rota.
func (s *Service) Responder(idRota int64, idPergunta string, resposta Resposta) error {
	sess, ok := s.sessao(idRota)
	if !ok {
		return ErrSemSessao
	}
	if !sess.Carregada() {
		return ErrPesquisaCarregando
	}
	return sess.Responder(idPergunta, resposta)
}

// ResponderValor converte o valor textual para o tipo declarado da
// pergunta antes de gravar. É a porta de entrada do handler para todo
// tipo exceto imagem.
func (s *Service) ResponderValor(idRota int64, idPergunta, valor string) error {
	sess, ok := s.sessao(idRota)
	if !ok {
		return ErrSemSessao
	}
	if !sess.Carregada() {
		return ErrPesquisaCarregando
	}

	pergunta, ok := perguntaPorID(sess.Perguntas(), idPergunta)
	if !ok {
		return ErrPerguntaDesconhecida
	}

	resposta, err := parseResposta(pergunta.Tipo, valor)
	if err != nil {
		return err
	}
	return sess.Responder(idPergunta, resposta)
}

// ResponderImagem grava o binário pendente; a URL só nasce no envio.
func (s *Service) ResponderImagem(idRota int64, idPergunta, nome, contentType string, conteudo []byte) error {
	sess, ok := s.sessao(idRota)
	if !ok {
		return ErrSemSessao
	}
	if !sess.Carregada() {
		return ErrPesquisaCarregando
	}
	return sess.Responder(idPergunta, RespostaImagem{
		Nome:        nome,
		ContentType: contentType,
		Conteudo:    conteudo,
	})
}

func perguntaPorID(perguntas []Pergunta, id string) (Pergunta, bool) {
	for _, p := range perguntas {
		if p.ID == id {
			return p, true
		}
	}
	return Pergunta{}, false
}

func parseResposta(tipo TipoPergunta, valor string) (Resposta, error) {
	switch tipo {
	case TipoInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(valor), 10, 64)
		if err != nil {
			return nil, ErrRespostaTipoErrado
		}
		return RespostaNumero{Numero: n}, nil
	case TipoBoolean:
		switch strings.ToLower(strings.TrimSpace(valor)) {
		case "sim", "true", "1":
			return RespostaSimNao{Sim: true}, nil
		case "nao", "não", "false", "0":
			return RespostaSimNao{Sim: false}, nil
		default:
			return nil, ErrRespostaTipoErrado
		}
	case TipoDate:
		d, err := time.Parse("2006-01-02", strings.TrimSpace(valor))
		if err != nil {
			return nil, ErrRespostaTipoErrado
		}
		return RespostaData{Data: d}, nil
	case TipoImage:
		return nil, ErrRespostaTipoErrado
	default:
		return RespostaTexto{Texto: valor}, nil
	}
}

// Fechar abandona a sessão: respostas somem, o status da rota fica
// como está e qualquer conclusão atrasada passa a ser ignorada.
func (s *Service) Fechar(idRota int64) {
	s.descartarSessao(idRota)

	s.mu.Lock()
	enviar := s.enviarAcoes[idRota]
	s.mu.Unlock()
	if enviar != nil {
		enviar.Reset()
	}
}

// descartarSessao remove a sessão e zera só a carga. O embrulho de
// envio fica intacto: no envio bem-sucedido ele ainda vai publicar o
// próprio sucesso.
func (s *Service) descartarSessao(idRota int64) {
	s.mu.Lock()
	delete(s.sessoes, idRota)
	abrir := s.abrirAcoes[idRota]
	s.mu.Unlock()

	if abrir != nil {
		abrir.Reset()
	}
}

// Enviar resolve as imagens pendentes, monta um resultado por pergunta
// e delega a finalização da rota. Qualquer upload que falhe aborta o
// envio inteiro; a sessão continua aberta para retry.
func (s *Service) Enviar(ctx context.Context, idRota int64, obs string, redirect *rota.Redirect) ([]CampanhaResult, error) {
	sess, ok := s.sessao(idRota)
	if !ok {
		return nil, ErrSemSessao
	}
	if !sess.Carregada() {
		return nil, ErrPesquisaCarregando
	}
	if !sess.AllAnswered() {
		return nil, ErrPesquisaIncompleta
	}
	sess.DefinirObs(obs)

	res := s.enviarAcao(idRota).Execute(ctx, envioArgs{
		IDRota:   idRota,
		Token:    sess.Token(),
		Obs:      obs,
		Redirect: redirect,
	})
	if !res.Ok {
		return nil, rota.ErrOperacaoFalhou
	}
	return res.Value, nil
}

// Feedback, Retry e Reset só consultam ações que alguma operação já
// criou; id ou op desconhecidos não alocam nada.
func (s *Service) Feedback(idRota int64, op Op) feedback.State {
	switch op {
	case OpEnviar:
		if a, ok := s.enviarAcaoExistente(idRota); ok {
			return a.State()
		}
	case OpCarregar:
		if a, ok := s.abrirAcaoExistente(idRota); ok {
			return a.State()
		}
	}
	return feedback.StateIdle
}

func (s *Service) Retry(ctx context.Context, idRota int64, op Op) error {
	ok := false
	switch op {
	case OpEnviar:
		if a, achou := s.enviarAcaoExistente(idRota); achou {
			ok = a.Retry(ctx).Ok
		}
	case OpCarregar:
		if a, achou := s.abrirAcaoExistente(idRota); achou {
			ok = a.Retry(ctx).Ok
		}
	}
	if !ok {
		return rota.ErrOperacaoFalhou
	}
	return nil
}

func (s *Service) Reset(idRota int64, op Op) {
	switch op {
	case OpEnviar:
		if a, ok := s.enviarAcaoExistente(idRota); ok {
			a.Reset()
		}
	case OpCarregar:
		if a, ok := s.abrirAcaoExistente(idRota); ok {
			a.Reset()
		}
	}
}

func (s *Service) Sessao(idRota int64) (*Sessao, bool) {
	return s.sessao(idRota)
}

func (s *Service) sessao(idRota int64) (*Sessao, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessoes[idRota]
	return sess, ok
}

func (s *Service) abrirAcaoExistente(idRota int64) (*feedback.Action[cargaArgs, []Pergunta], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.abrirAcoes[idRota]
	return a, ok
}

func (s *Service) enviarAcaoExistente(idRota int64) (*feedback.Action[envioArgs, []CampanhaResult], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.enviarAcoes[idRota]
	return a, ok
}

func (s *Service) abrirAcao(idRota int64) *feedback.Action[cargaArgs, []Pergunta] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.abrirAcoes[idRota]; ok {
		return a
	}
	a := feedback.NewAction(s.carregarPerguntas, s.opts)
	s.abrirAcoes[idRota] = a
	return a
}

func (s *Service) enviarAcao(idRota int64) *feedback.Action[envioArgs, []CampanhaResult] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.enviarAcoes[idRota]; ok {
		return a
	}
	a := feedback.NewAction(s.enviar, s.opts)
	s.enviarAcoes[idRota] = a
	return a
}

func (s *Service) carregarPerguntas(ctx context.Context, args cargaArgs) ([]Pergunta, error) {
	perguntas, err := s.buscarPerguntas(ctx, args.IDCampanha)
	if err != nil {
		return nil, err
	}

	sess, ok := s.sessao(args.IDRota)
	if !ok || !sess.aplicarPerguntas(args.Token, perguntas) {
		// sessão fechada ou reaberta enquanto a carga corria
		s.log.Debug("carga de perguntas descartada por token superado",
			zap.Int64("id_rota", args.IDRota),
			zap.Uint64("token", args.Token),
		)
	}
	return perguntas, nil
}

func (s *Service) buscarPerguntas(ctx context.Context, idCampanha int64) ([]Pergunta, error) {
	if s.client == nil {
		return MockPerguntas(), nil
	}

	cacheKey := fmt.Sprintf("perguntas:campanha:%d", idCampanha)
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var perguntas []Pergunta
			if err := json.Unmarshal([]byte(cached), &perguntas); err == nil {
				return perguntas, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn("cache de perguntas indisponível", zap.Error(err))
		}
	}

	perguntas, err := s.client.Perguntas(ctx, idCampanha)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(perguntas); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, 24*time.Hour).Err(); err != nil {
				s.log.Warn("falha ao popular cache de perguntas", zap.Error(err))
			}
		}
	}
	return perguntas, nil
}

func (s *Service) enviar(ctx context.Context, args envioArgs) ([]CampanhaResult, error) {
	sess, ok := s.sessao(args.IDRota)
	if !ok || sess.Token() != args.Token {
		return nil, ErrSemSessao
	}

	r, ok := s.store.Get(args.IDRota)
	if !ok {
		return nil, rota.ErrRotaNaoEncontrada
	}

	resultados, err := s.montarResultados(ctx, sess, r)
	if err != nil {
		return nil, err
	}

	if s.client != nil && len(resultados) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for _, resultado := range resultados {
			g.Go(func() error {
				return s.client.EnviarResultado(gctx, resultado)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if _, err := s.controller.Finalizar(ctx, args.IDRota, args.Obs, args.Redirect); err != nil {
		return nil, err
	}

	agora := s.agora()
	for _, resultado := range resultados {
		if err := s.hist.RegistrarResultado(ctx, historico.Resultado{
			IDRota:     resultado.IDRota,
			IDPergunta: resultado.IDPergunta,
			Resposta:   resultado.Resposta,
			CriadoEm:   agora,
		}); err != nil {
			s.log.Warn("falha ao registrar resultado no histórico", zap.Error(err))
		}
	}

	s.descartarSessao(args.IDRota)
	return resultados, nil
}

// montarResultados resolve cada imagem pendente para URL e converte
// toda resposta no texto final. Falha de upload aborta tudo, nenhum
// finalize parcial acontece.
func (s *Service) montarResultados(ctx context.Context, sess *Sessao, r rota.Rota) ([]CampanhaResult, error) {
	perguntas := sess.Perguntas()
	resultados := make([]CampanhaResult, 0, len(perguntas))

	for _, p := range perguntas {
		resposta, ok := sess.respostaDe(p.ID)
		if !ok {
			return nil, ErrPesquisaIncompleta
		}

		if img, isImg := resposta.(RespostaImagem); isImg && img.URL == "" {
			if s.uploader == nil {
				return nil, ErrImagemNaoResolvida
			}
			url, err := s.uploader.Upload(ctx, img.Conteudo, img.Nome, img.ContentType, r.Campanha.Nome)
			if err != nil {
				return nil, err
			}
			img.URL = url
			resposta = img
		}

		valor, err := ValorFinal(resposta)
		if err != nil {
			return nil, err
		}
		resultados = append(resultados, CampanhaResult{
			IDRota:     r.IDRotaPromotor,
			IDPergunta: p.ID,
			Resposta:   valor,
		})
	}
	return resultados, nil
}
