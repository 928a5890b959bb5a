package rota

import (
	"sort"
	"sync"
)

// Store guarda a coleção de rotas da campanha ativa em memória. A
// coleção é reconstruída inteira a cada carga e mutada no lugar, sempre
// por id, pelas transições do Controller.
type Store struct {
	mu    sync.RWMutex
	rotas map[int64]*Rota
	ordem []int64
}

func NewStore() *Store {
	return &Store{rotas: map[int64]*Rota{}}
}

func (s *Store) ReplaceAll(rotas []Rota) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotas = make(map[int64]*Rota, len(rotas))
	s.ordem = make([]int64, 0, len(rotas))
	for i := range rotas {
		r := rotas[i]
		s.rotas[r.IDRotaPromotor] = &r
		s.ordem = append(s.ordem, r.IDRotaPromotor)
	}
}

func (s *Store) Get(id int64) (Rota, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rotas[id]
	if !ok {
		return Rota{}, false
	}
	return *r, true
}

// Apply muta a rota identificada aplicando patch. Retorna false quando
// a rota não existe na coleção atual.
func (s *Store) Apply(id int64, patch func(*Rota)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rotas[id]
	if !ok {
		return false
	}
	patch(r)
	return true
}

// Pendentes lista as rotas não terminais ordenadas pela distância
// crescente; rota sem distância vai para o fim.
func (s *Store) Pendentes() []Rota {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pendentes []Rota
	for _, id := range s.ordem {
		r := s.rotas[id]
		if !r.Status.Terminal() {
			pendentes = append(pendentes, *r)
		}
	}
	sort.SliceStable(pendentes, func(i, j int) bool {
		return distanciaOuInfinito(pendentes[i]) < distanciaOuInfinito(pendentes[j])
	})
	return pendentes
}

// Historico lista as rotas terminais na ordem original da carga.
func (s *Store) Historico() []Rota {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var historico []Rota
	for _, id := range s.ordem {
		r := s.rotas[id]
		if r.Status.Terminal() {
			historico = append(historico, *r)
		}
	}
	return historico
}

// Ativa devolve a rota A CAMINHO ou EM ANDAMENTO, se houver.
func (s *Store) Ativa() (Rota, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.ordem {
		r := s.rotas[id]
		if r.Status.Ativo() {
			return *r, true
		}
	}
	return Rota{}, false
}

func (s *Store) Resumo() ResumoRotas {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resumo := ResumoRotas{Total: len(s.ordem)}
	for _, id := range s.ordem {
		r := s.rotas[id]
		if r.Status == StatusFinalizado {
			resumo.Concluidas++
		}
		if !r.Status.Terminal() {
			resumo.Pendentes++
		}
	}
	return resumo
}

func distanciaOuInfinito(r Rota) float64 {
	if r.Oficina.DistanciaKm == nil {
		return 999
	}
	return *r.Oficina.DistanciaKm
}
