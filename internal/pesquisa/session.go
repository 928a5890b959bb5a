package pesquisa

import (
	"sync"
)

// Sessao é o fluxo transitório de perguntas e respostas de uma visita.
// Nasce vazia na abertura, morre no fechamento; nunca mexe no status da
// rota por conta própria.
type Sessao struct {
	mu        sync.RWMutex
	idRota    int64
	token     uint64
	perguntas []Pergunta
	carregada bool
	respostas map[string]Resposta
	obs       string
}

func novaSessao(idRota int64, token uint64) *Sessao {
	return &Sessao{
		idRota:    idRota,
		token:     token,
		respostas: map[string]Resposta{},
	}
}

func (s *Sessao) Token() uint64 {
	return s.token
}

// aplicarPerguntas instala o questionário carregado. A carga de uma
// sessão abandonada chega com token antigo e é ignorada.
func (s *Sessao) aplicarPerguntas(token uint64, perguntas []Pergunta) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return false
	}
	s.perguntas = perguntas
	s.carregada = true
	return true
}

func (s *Sessao) Perguntas() []Pergunta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Pergunta, len(s.perguntas))
	copy(out, s.perguntas)
	return out
}

func (s *Sessao) Carregada() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carregada
}

// Responder grava a resposta de uma pergunta, conferindo o tipo
// declarado antes de aceitar.
func (s *Sessao) Responder(idPergunta string, r Resposta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pergunta *Pergunta
	for i := range s.perguntas {
		if s.perguntas[i].ID == idPergunta {
			pergunta = &s.perguntas[i]
			break
		}
	}
	if pergunta == nil {
		return ErrPerguntaDesconhecida
	}

	if err := ValidarResposta(*pergunta, r); err != nil {
		return err
	}

	s.respostas[idPergunta] = r
	return nil
}

func (s *Sessao) DefinirObs(obs string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obs = obs
}

func (s *Sessao) Obs() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.obs
}

// AllAnswered é verdadeiro quando toda pergunta tem resposta válida
// gravada. Questionário vazio conta como completo.
func (s *Sessao) AllAnswered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.perguntas {
		r, ok := s.respostas[p.ID]
		if !ok {
			return false
		}
		if err := ValidarResposta(p, r); err != nil {
			return false
		}
	}
	return true
}

func (s *Sessao) respostaDe(idPergunta string) (Resposta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.respostas[idPergunta]
	return r, ok
}
