package login

import (
	"context"
	"database/sql"
)

type PromotorRow struct {
	Promotor
	SenhaHash string
}

type RepositoryInterface interface {
	GetPromotorByEmail(ctx context.Context, email string) (PromotorRow, error)
}

type Repository struct {
	Conn *sql.DB
}

func NewLoginRepository(Conn *sql.DB) *Repository {
	return &Repository{Conn: Conn}
}

func (r *Repository) GetPromotorByEmail(ctx context.Context, email string) (PromotorRow, error) {
	var row PromotorRow
	var senha sql.NullString

	err := r.Conn.QueryRowContext(ctx, `
		SELECT id_promotor, nome, email, cpf, id_client, senha
		FROM promotores
		WHERE email = $1`,
		email,
	).Scan(&row.IDPromotor, &row.Nome, &row.Email, &row.CPF, &row.IDClient, &senha)
	if err != nil {
		return PromotorRow{}, err
	}

	row.SenhaHash = senha.String
	return row, nil
}
