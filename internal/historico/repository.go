package historico

import (
	"context"
	"database/sql"

	"promotor/validation"
)

type InterfaceRepository interface {
	RegistrarTransicao(ctx context.Context, t Transicao) error
	RegistrarResultado(ctx context.Context, r Resultado) error
	TransicoesPorRota(ctx context.Context, idRota int64) ([]Transicao, error)
}

type Repository struct {
	Conn *sql.DB
}

func NewHistoricoRepository(Conn *sql.DB) *Repository {
	return &Repository{Conn: Conn}
}

func (r *Repository) RegistrarTransicao(ctx context.Context, t Transicao) error {
	_, err := r.Conn.ExecContext(ctx, `
		INSERT INTO rota_historico (id_rota, de, para, obs, criado_em)
		VALUES ($1, $2, $3, $4, $5)`,
		t.IDRota, t.De, t.Para, t.Obs, t.CriadoEm)
	return err
}

func (r *Repository) RegistrarResultado(ctx context.Context, res Resultado) error {
	_, err := r.Conn.ExecContext(ctx, `
		INSERT INTO campanha_resultados (id_rota, id_pergunta, resposta, criado_em)
		VALUES ($1, $2, $3, $4)`,
		res.IDRota, res.IDPergunta, res.Resposta, res.CriadoEm)
	return err
}

func (r *Repository) TransicoesPorRota(ctx context.Context, idRota int64) ([]Transicao, error) {
	rows, err := r.Conn.QueryContext(ctx, `
		SELECT id, id_rota, de, para, obs, criado_em
		FROM rota_historico
		WHERE id_rota = $1
		ORDER BY criado_em ASC`, idRota)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transicoes []Transicao
	for rows.Next() {
		var t Transicao
		var obs sql.NullString
		if err := rows.Scan(&t.ID, &t.IDRota, &t.De, &t.Para, &obs, &t.CriadoEm); err != nil {
			return nil, err
		}
		t.Obs = validation.GetStringFromNull(obs)
		transicoes = append(transicoes, t)
	}
	return transicoes, rows.Err()
}
