package historico

import (
	"context"
	"sync"
)

// MemoryRepository sustenta o modo offline, quando nenhum banco está
// configurado. Mesmo contrato, vida curta.
type MemoryRepository struct {
	mu         sync.RWMutex
	seq        int64
	transicoes []Transicao
	resultados []Resultado
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) RegistrarTransicao(_ context.Context, t Transicao) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t.ID = m.seq
	m.transicoes = append(m.transicoes, t)
	return nil
}

func (m *MemoryRepository) RegistrarResultado(_ context.Context, r Resultado) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	r.ID = m.seq
	m.resultados = append(m.resultados, r)
	return nil
}

func (m *MemoryRepository) TransicoesPorRota(_ context.Context, idRota int64) ([]Transicao, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Transicao
	for _, t := range m.transicoes {
		if t.IDRota == idRota {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MemoryRepository) Resultados() []Resultado {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Resultado, len(m.resultados))
	copy(out, m.resultados)
	return out
}
