package login

type Promotor struct {
	IDPromotor int64  `json:"id_promotor"`
	Nome       string `json:"nome"`
	Email      string `json:"email"`
	CPF        string `json:"cpf"`
	IDClient   int64  `json:"id_client"`
}

type RequestLogin struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
	Token string `json:"token"`
}

type ResponseLogin struct {
	Promotor Promotor `json:"promotor"`
	Token    string   `json:"token"`
}

// --- payloads do ERP (casing do backend) ---

type PromotorAPI struct {
	IDPromotor int64  `json:"ID_PROMOTOR"`
	Nome       string `json:"NOME"`
	Email      string `json:"EMAIL"`
	CPF        string `json:"CPF"`
	IDClient   int64  `json:"ID_CLIENT"`
}

type LoginUpstreamRequest struct {
	Email string `json:"EMAIL"`
	Senha string `json:"SENHA"`
}

type LoginUpstreamResponse struct {
	Promotor PromotorAPI `json:"promotor"`
	Token    string      `json:"token"`
}

func (p *Promotor) ParseFromPromotorAPI(api PromotorAPI) {
	p.IDPromotor = api.IDPromotor
	p.Nome = api.Nome
	p.Email = api.Email
	p.CPF = api.CPF
	p.IDClient = api.IDClient
}
