package get_token

import "time"

type PayloadPromotorDTO struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	IDClient  int64     `json:"id_client"`
	ExpiredAt time.Time `json:"expired_at"`
}
