package pesquisa

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TipoPergunta é o conjunto fechado de tipos de resposta que uma
// pergunta de campanha aceita.
type TipoPergunta string

const (
	TipoString  TipoPergunta = "String"
	TipoInteger TipoPergunta = "Integer"
	TipoBoolean TipoPergunta = "Boolean"
	TipoDate    TipoPergunta = "Date"
	TipoImage   TipoPergunta = "Image"
)

// DecodeTipo aceita tanto os nomes atuais quanto a codificação antiga
// do ERP (TEXTO/NUMERO/SIM_NAO). Tipo desconhecido cai em String, como
// o app sempre fez.
func DecodeTipo(raw string) TipoPergunta {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TEXTO", "STRING":
		return TipoString
	case "NUMERO", "INTEGER":
		return TipoInteger
	case "SIM_NAO", "BOOLEAN":
		return TipoBoolean
	case "DATE":
		return TipoDate
	case "IMAGE":
		return TipoImage
	default:
		return TipoString
	}
}

type Pergunta struct {
	ID         string       `json:"id_perguntas"`
	IDCampanha string       `json:"id_campanha"`
	Texto      string       `json:"pergunta"`
	Tipo       TipoPergunta `json:"tipo"`
}

type PerguntaAPI struct {
	IDPerguntas int64  `json:"ID_PERGUNTAS"`
	IDCampanha  int64  `json:"ID_CAMPANHA"`
	Pergunta    string `json:"PERGUNTA"`
	Tipo        string `json:"TIPO"`
}

type CampanhaDetalheResponse struct {
	Message string `json:"message"`
	Data    struct {
		CampanhaPerguntas []PerguntaAPI `json:"campanhaPerguntas"`
	} `json:"data"`
}

func (p *Pergunta) ParseFromPerguntaAPI(api PerguntaAPI) {
	p.ID = fmt.Sprintf("%d", api.IDPerguntas)
	p.IDCampanha = fmt.Sprintf("%d", api.IDCampanha)
	p.Texto = api.Pergunta
	p.Tipo = DecodeTipo(api.Tipo)
}

// CampanhaResult é a unidade de envio: uma resposta final, textual, de
// uma pergunta para uma rota. Só existe na hora do envio.
type CampanhaResult struct {
	IDRota     int64  `json:"id_rota"`
	IDPergunta string `json:"id_pergunta"`
	Resposta   string `json:"resposta"`
}

var (
	ErrRespostaVazia       = errors.New("resposta vazia")
	ErrRespostaTipoErrado  = errors.New("resposta com tipo diferente do declarado na pergunta")
	ErrImagemNaoResolvida  = errors.New("imagem ainda não resolvida para URL")
	ErrPerguntaDesconhecida = errors.New("pergunta não pertence à pesquisa")
)

// Resposta é a união fechada de valores de resposta, uma variante por
// tipo de pergunta.
type Resposta interface {
	tipo() TipoPergunta
}

type RespostaTexto struct {
	Texto string
}

type RespostaNumero struct {
	Numero int64
}

type RespostaSimNao struct {
	Sim bool
}

type RespostaData struct {
	Data time.Time
}

// RespostaImagem carrega o binário pendente até o envio resolver a URL
// durável no bucket.
type RespostaImagem struct {
	Nome        string
	ContentType string
	Conteudo    []byte
	URL         string
}

func (RespostaTexto) tipo() TipoPergunta  { return TipoString }
func (RespostaNumero) tipo() TipoPergunta { return TipoInteger }
func (RespostaSimNao) tipo() TipoPergunta { return TipoBoolean }
func (RespostaData) tipo() TipoPergunta   { return TipoDate }
func (RespostaImagem) tipo() TipoPergunta { return TipoImage }

// ValidarResposta confere forma e preenchimento contra o tipo declarado
// da pergunta. Switch exaustivo sobre as variantes.
func ValidarResposta(p Pergunta, r Resposta) error {
	if r == nil {
		return ErrRespostaVazia
	}
	if r.tipo() != p.Tipo {
		return ErrRespostaTipoErrado
	}

	switch v := r.(type) {
	case RespostaTexto:
		if strings.TrimSpace(v.Texto) == "" {
			return ErrRespostaVazia
		}
	case RespostaNumero:
		// qualquer inteiro serve, inclusive zero
	case RespostaSimNao:
		// os dois valores são válidos
	case RespostaData:
		if v.Data.IsZero() {
			return ErrRespostaVazia
		}
	case RespostaImagem:
		if len(v.Conteudo) == 0 && v.URL == "" {
			return ErrRespostaVazia
		}
	default:
		return ErrRespostaTipoErrado
	}
	return nil
}

// ValorFinal converte a resposta no texto que vai no CampanhaResult.
// Booleano vira o par literal "sim"/"nao"; imagem exige URL resolvida.
func ValorFinal(r Resposta) (string, error) {
	switch v := r.(type) {
	case RespostaTexto:
		return v.Texto, nil
	case RespostaNumero:
		return fmt.Sprintf("%d", v.Numero), nil
	case RespostaSimNao:
		if v.Sim {
			return "sim", nil
		}
		return "nao", nil
	case RespostaData:
		return v.Data.Format("2006-01-02"), nil
	case RespostaImagem:
		if v.URL == "" {
			return "", ErrImagemNaoResolvida
		}
		return v.URL, nil
	default:
		return "", ErrRespostaTipoErrado
	}
}

// MockPerguntas é o questionário estático do modo offline.
func MockPerguntas() []Pergunta {
	return []Pergunta{
		{ID: "q1", IDCampanha: "1", Texto: "Qual a quantidade de oleo em estoque?", Tipo: TipoInteger},
		{ID: "q2", IDCampanha: "1", Texto: "O material promocional foi instalado?", Tipo: TipoBoolean},
		{ID: "q3", IDCampanha: "1", Texto: "Como esta a exposicao dos produtos?", Tipo: TipoString},
		{ID: "q4", IDCampanha: "1", Texto: "O responsavel da oficina estava presente?", Tipo: TipoBoolean},
	}
}
