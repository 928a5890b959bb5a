package token

import "time"

type Maker interface {
	CreateTokenPromotor(
		id int64,
		nome string,
		email string,
		cpf string,
		idClient int64,
		expireAt time.Time,
	) (string, error)
	VerifyTokenPromotor(token string) (*PayloadPromotor, error)
}
