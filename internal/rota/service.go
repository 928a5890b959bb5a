package rota

import (
	"context"

	"go.uber.org/zap"

	"promotor/pkg/gps"
)

type InterfaceService interface {
	CarregarCampanhaAtiva(ctx context.Context, idPromotor int64, posicao string) (CampanhaAtivaDTO, error)
	Pendentes() []Rota
	Historico() []Rota
	Resumo() ResumoRotas
}

type CampanhaAtivaDTO struct {
	Campanha Campanha    `json:"campanha"`
	Rotas    []Rota      `json:"rotas"`
	Resumo   ResumoRotas `json:"resumo"`
}

type CampanhaClient interface {
	CampanhaAtiva(ctx context.Context, idPromotor int64) (CampanhaAtivaResponse, error)
}

// Service carrega a campanha ativa e reconstrói a coleção inteira de
// rotas. Transições individuais nunca passam por aqui; são assunto do
// Controller.
type Service struct {
	store     *Store
	client    CampanhaClient
	distancia *gps.Distancia
	log       *zap.Logger
}

func NewRotasService(store *Store, client CampanhaClient, distancia *gps.Distancia, log *zap.Logger) *Service {
	return &Service{
		store:     store,
		client:    client,
		distancia: distancia,
		log:       log,
	}
}

// CarregarCampanhaAtiva busca a campanha do promotor no ERP (ou a carga
// de demonstração no modo offline), normaliza as rotas, enriquece a
// distância quando há posição e chave de mapas, e substitui a coleção.
func (s *Service) CarregarCampanhaAtiva(ctx context.Context, idPromotor int64, posicao string) (CampanhaAtivaDTO, error) {
	if s.client == nil {
		rotas := MockRotas()
		s.store.ReplaceAll(rotas)
		return CampanhaAtivaDTO{
			Campanha: MockCampanha(),
			Rotas:    s.store.Pendentes(),
			Resumo:   s.store.Resumo(),
		}, nil
	}

	response, err := s.client.CampanhaAtiva(ctx, idPromotor)
	if err != nil {
		return CampanhaAtivaDTO{}, err
	}

	campanha := Campanha{
		IDCampanha: response.Data.IDCampanha,
		Nome:       response.Data.Nome,
		Objetivo:   response.Data.Objetivo,
	}

	rotas := make([]Rota, 0, len(response.Data.Rotas))
	for _, api := range response.Data.Rotas {
		var r Rota
		r.ParseFromRotaAPI(api, campanha)
		s.enriquecerDistancia(ctx, &r, posicao)
		rotas = append(rotas, r)
	}

	s.store.ReplaceAll(rotas)

	return CampanhaAtivaDTO{
		Campanha: campanha,
		Rotas:    s.store.Pendentes(),
		Resumo:   s.store.Resumo(),
	}, nil
}

func (s *Service) Pendentes() []Rota {
	return s.store.Pendentes()
}

func (s *Service) Historico() []Rota {
	return s.store.Historico()
}

func (s *Service) Resumo() ResumoRotas {
	return s.store.Resumo()
}

func (s *Service) enriquecerDistancia(ctx context.Context, r *Rota, posicao string) {
	if s.distancia == nil || posicao == "" {
		return
	}
	km, err := s.distancia.KmAte(ctx, posicao, gps.Destino{
		Localizacao: r.Oficina.Localizacao,
		Endereco:    r.Oficina.Endereco,
	})
	if err != nil {
		s.log.Warn("matriz de distância indisponível",
			zap.Int64("id_oficina", r.Oficina.IDOficina),
			zap.Error(err),
		)
		return
	}
	r.Oficina.DistanciaKm = &km
}
