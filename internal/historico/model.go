package historico

import "time"

// Transicao registra uma mudança de status aplicada a uma rota.
type Transicao struct {
	ID       int64     `json:"id"`
	IDRota   int64     `json:"id_rota"`
	De       string    `json:"de"`
	Para     string    `json:"para"`
	Obs      string    `json:"obs,omitempty"`
	CriadoEm time.Time `json:"criado_em"`
}

// Resultado é a cópia local de uma resposta enviada ao ERP, guardada
// como trilha de auditoria da visita.
type Resultado struct {
	ID         int64     `json:"id"`
	IDRota     int64     `json:"id_rota"`
	IDPergunta string    `json:"id_pergunta"`
	Resposta   string    `json:"resposta"`
	CriadoEm   time.Time `json:"criado_em"`
}
