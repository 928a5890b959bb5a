package rota

import (
	"strings"
	"time"
)

type Status string

const (
	StatusBacklog     Status = "BACKLOG"
	StatusACaminho    Status = "A CAMINHO"
	StatusEmAndamento Status = "EM ANDAMENTO"
	StatusFinalizado  Status = "FINALIZADO"
	StatusCancelado   Status = "CANCELADO"
)

func (s Status) Terminal() bool {
	return s == StatusFinalizado || s == StatusCancelado
}

func (s Status) Ativo() bool {
	return s == StatusACaminho || s == StatusEmAndamento
}

type Redirect string

const (
	RedirectSAC       Redirect = "SAC"
	RedirectVendas    Redirect = "VENDAS"
	RedirectLogistica Redirect = "LOGISTICA"
)

type Campanha struct {
	IDCampanha int64  `json:"id_campanha"`
	Nome       string `json:"nome"`
	Objetivo   string `json:"objetivo"`
}

type Oficina struct {
	IDOficina   int64    `json:"id_oficina"`
	Nome        string   `json:"nome"`
	Endereco    string   `json:"endereco"`
	Telefone    string   `json:"telefone"`
	Localizacao string   `json:"localizacao"`
	Bairro      string   `json:"bairro"`
	Cidade      string   `json:"cidade"`
	Estado      string   `json:"estado"`
	DistanciaKm *float64 `json:"distancia_km,omitempty"`
}

type Rota struct {
	IDRotaPromotor     int64      `json:"id_rota_promotor"`
	IDOficina          int64      `json:"id_oficina"`
	IDCampanhaPromotor int64      `json:"id_campanha_promotor"`
	Status             Status     `json:"status"`
	Success            *bool      `json:"success"`
	CheckinTime        *time.Time `json:"checkin_time"`
	DoneAt             *time.Time `json:"done_at"`
	Obs                *string    `json:"obs"`
	Redirect           *Redirect  `json:"redirect"`
	Oficina            Oficina    `json:"oficina"`
	Campanha           Campanha   `json:"campanha"`
}

// RotaUpdate é o payload parcial do PUT rota/{id}/options no ERP.
// O upstream fala em caixa alta.
type RotaUpdate struct {
	Status      Status    `json:"STATUS"`
	Success     *bool     `json:"SUCCESS,omitempty"`
	CheckinTime *string   `json:"CHECKIN_TIME,omitempty"`
	DoneAt      *string   `json:"DONE_AT,omitempty"`
	Obs         *string   `json:"OBS,omitempty"`
	Redirect    *Redirect `json:"REDIRECT,omitempty"`
}

// --- payloads do ERP (casing do backend) ---

type OficinaAPI struct {
	IDOficina    int64  `json:"ID_OFICINA"`
	NomeFantasia string `json:"NOME_FANTASIA"`
	RazaoSocial  string `json:"RAZAO_SOCIAL"`
	CNPJ         string `json:"CNPJ"`
	Email        string `json:"EMAIL"`
	Telefone     string `json:"TELEFONE"`
	Endereco     string `json:"ENDERECO"`
	Numero       string `json:"NUMERO"`
	Bairro       string `json:"BAIRRO"`
	Cidade       string `json:"CIDADE"`
	Estado       string `json:"ESTADO"`
	CEP          string `json:"CEP"`
	Localizacao  string `json:"LOCALIZACAO"`
	Ativo        string `json:"ATIVO"`
}

type RotaAPI struct {
	IDRotaPromotor     int64      `json:"ID_ROTA_PROMOTOR"`
	IDOficina          int64      `json:"ID_OFICINA"`
	IDCampanhaPromotor int64      `json:"ID_CAMPANHA_PROMOTOR"`
	Status             Status     `json:"STATUS"`
	Success            *bool      `json:"SUCCESS"`
	CheckinTime        string     `json:"CHECKIN_TIME"`
	DoneAt             string     `json:"DONE_AT"`
	Obs                string     `json:"OBS"`
	Redirect           string     `json:"REDIRECT"`
	Oficina            OficinaAPI `json:"oficina"`
}

// CampanhaAtivaResponse espelha o GET campanha/ativa. O campo OBEJTIVO
// vem grafado assim do upstream.
type CampanhaAtivaResponse struct {
	Message string `json:"message"`
	Data    struct {
		IDCampanha int64     `json:"ID_CAMPANHA"`
		Nome       string    `json:"NOME"`
		Objetivo   string    `json:"OBEJTIVO"`
		IDClient   int64     `json:"ID_CLIENT"`
		StartTime  string    `json:"START_TIME"`
		EndTime    string    `json:"END_TIME"`
		Rotas      []RotaAPI `json:"rotas"`
	} `json:"data"`
}

func (r *Rota) ParseFromRotaAPI(api RotaAPI, campanha Campanha) {
	o := api.Oficina
	partes := []string{o.Endereco, o.Numero, o.Bairro, o.Cidade, o.Estado}
	endereco := make([]string, 0, len(partes))
	for _, p := range partes {
		if p != "" {
			endereco = append(endereco, p)
		}
	}

	r.IDRotaPromotor = api.IDRotaPromotor
	r.IDOficina = api.IDOficina
	r.IDCampanhaPromotor = api.IDCampanhaPromotor
	r.Status = api.Status
	r.Success = api.Success
	r.CheckinTime = parseHora(api.CheckinTime)
	r.DoneAt = parseHora(api.DoneAt)
	if api.Obs != "" {
		obs := api.Obs
		r.Obs = &obs
	}
	if api.Redirect != "" {
		red := Redirect(api.Redirect)
		r.Redirect = &red
	}
	r.Oficina = Oficina{
		IDOficina:   o.IDOficina,
		Nome:        o.NomeFantasia,
		Endereco:    strings.Join(endereco, ", "),
		Telefone:    o.Telefone,
		Localizacao: o.Localizacao,
		Bairro:      o.Bairro,
		Cidade:      o.Cidade,
		Estado:      o.Estado,
	}
	r.Campanha = campanha
}

func parseHora(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

type ResumoRotas struct {
	Pendentes  int `json:"pendentes"`
	Concluidas int `json:"concluidas"`
	Total      int `json:"total"`
}
