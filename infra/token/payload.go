package token

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrExpiredToken = errors.New("token has expired")
var ErrInvalidToken = errors.New("token is invalid")

type PayloadPromotor struct {
	IDToken   uuid.UUID `json:"id_token"`
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	IDClient  int64     `json:"id_client"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

func (payload *PayloadPromotor) valid() error {
	if time.Now().After(payload.ExpiredAt) {
		return ErrExpiredToken
	}
	return nil
}

func NewPayloadPromotor(id int64, nome, email, cpf string, idClient int64, expireAt time.Time) (*PayloadPromotor, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	payload := &PayloadPromotor{
		IDToken:   tokenID,
		ID:        id,
		Nome:      nome,
		Email:     email,
		CPF:       cpf,
		IDClient:  idClient,
		IssuedAt:  time.Now(),
		ExpiredAt: expireAt,
	}

	return payload, nil
}
