package token

import (
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"golang.org/x/crypto/chacha20poly1305"
)

type PasetoMaker struct {
	paseto      *paseto.V2
	symetricKey []byte
}

func NewPasetoMaker(symetricKey string) (Maker, error) {
	if len(symetricKey) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("invalid key size: must be exactly %d characacteres", chacha20poly1305.KeySize)
	}

	return &PasetoMaker{
		paseto:      paseto.NewV2(),
		symetricKey: []byte(symetricKey),
	}, nil
}

func (maker *PasetoMaker) CreateTokenPromotor(id int64, nome string, email string, cpf string, idClient int64, expireAt time.Time) (string, error) {
	payload, err := NewPayloadPromotor(id, nome, email, cpf, idClient, expireAt)
	if err != nil {
		return "", err
	}

	return maker.paseto.Encrypt(maker.symetricKey, payload, nil)
}

func (maker *PasetoMaker) VerifyTokenPromotor(token string) (*PayloadPromotor, error) {
	payload := &PayloadPromotor{}

	err := maker.paseto.Decrypt(token, maker.symetricKey, payload, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	err = payload.valid()
	if err != nil {
		return nil, err
	}

	return payload, nil
}
