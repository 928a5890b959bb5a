package pesquisa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTipoLegado(t *testing.T) {
	cases := []struct {
		raw  string
		want TipoPergunta
	}{
		{"TEXTO", TipoString},
		{"NUMERO", TipoInteger},
		{"SIM_NAO", TipoBoolean},
		{"String", TipoString},
		{"Integer", TipoInteger},
		{"Boolean", TipoBoolean},
		{"Date", TipoDate},
		{"Image", TipoImage},
		{"  texto  ", TipoString},
		{"QUALQUER_COISA", TipoString},
		{"", TipoString},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DecodeTipo(tc.raw), "raw=%q", tc.raw)
	}
}

func TestValidarResposta(t *testing.T) {
	texto := Pergunta{ID: "q1", Tipo: TipoString}
	numero := Pergunta{ID: "q2", Tipo: TipoInteger}
	simNao := Pergunta{ID: "q3", Tipo: TipoBoolean}
	data := Pergunta{ID: "q4", Tipo: TipoDate}
	imagem := Pergunta{ID: "q5", Tipo: TipoImage}

	assert.NoError(t, ValidarResposta(texto, RespostaTexto{Texto: "boa exposição"}))
	assert.ErrorIs(t, ValidarResposta(texto, RespostaTexto{Texto: "   "}), ErrRespostaVazia)
	assert.ErrorIs(t, ValidarResposta(texto, nil), ErrRespostaVazia)
	assert.ErrorIs(t, ValidarResposta(texto, RespostaNumero{Numero: 3}), ErrRespostaTipoErrado)

	assert.NoError(t, ValidarResposta(numero, RespostaNumero{Numero: 0}), "zero é um inteiro válido")
	assert.NoError(t, ValidarResposta(simNao, RespostaSimNao{Sim: false}), "não também é resposta")
	assert.ErrorIs(t, ValidarResposta(data, RespostaData{}), ErrRespostaVazia)
	assert.NoError(t, ValidarResposta(data, RespostaData{Data: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}))

	assert.ErrorIs(t, ValidarResposta(imagem, RespostaImagem{}), ErrRespostaVazia)
	assert.NoError(t, ValidarResposta(imagem, RespostaImagem{Conteudo: []byte{0xFF}}))
}

func TestValorFinal(t *testing.T) {
	v, err := ValorFinal(RespostaTexto{Texto: "ok"})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	v, err = ValorFinal(RespostaNumero{Numero: 12})
	require.NoError(t, err)
	assert.Equal(t, "12", v)

	v, err = ValorFinal(RespostaSimNao{Sim: true})
	require.NoError(t, err)
	assert.Equal(t, "sim", v)

	v, err = ValorFinal(RespostaSimNao{Sim: false})
	require.NoError(t, err)
	assert.Equal(t, "nao", v)

	v, err = ValorFinal(RespostaData{Data: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", v)

	_, err = ValorFinal(RespostaImagem{Conteudo: []byte{1}})
	assert.ErrorIs(t, err, ErrImagemNaoResolvida)

	v, err = ValorFinal(RespostaImagem{URL: "https://bucket/x.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "https://bucket/x.jpg", v)
}

func TestParseResposta(t *testing.T) {
	r, err := parseResposta(TipoInteger, " 7 ")
	require.NoError(t, err)
	assert.Equal(t, RespostaNumero{Numero: 7}, r)

	_, err = parseResposta(TipoInteger, "sete")
	assert.ErrorIs(t, err, ErrRespostaTipoErrado)

	r, err = parseResposta(TipoBoolean, "SIM")
	require.NoError(t, err)
	assert.Equal(t, RespostaSimNao{Sim: true}, r)

	r, err = parseResposta(TipoBoolean, "não")
	require.NoError(t, err)
	assert.Equal(t, RespostaSimNao{Sim: false}, r)

	_, err = parseResposta(TipoBoolean, "talvez")
	assert.ErrorIs(t, err, ErrRespostaTipoErrado)

	r, err = parseResposta(TipoDate, "2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), r.(RespostaData).Data)

	_, err = parseResposta(TipoImage, "foto.jpg")
	assert.ErrorIs(t, err, ErrRespostaTipoErrado, "imagem entra pelo caminho multipart")

	r, err = parseResposta(TipoString, "texto livre")
	require.NoError(t, err)
	assert.Equal(t, RespostaTexto{Texto: "texto livre"}, r)
}

func TestSessaoAllAnswered(t *testing.T) {
	sess := novaSessao(1, 1)
	require.True(t, sess.aplicarPerguntas(1, []Pergunta{
		{ID: "q1", Tipo: TipoString},
		{ID: "q2", Tipo: TipoBoolean},
	}))

	assert.False(t, sess.AllAnswered())

	require.NoError(t, sess.Responder("q1", RespostaTexto{Texto: "ok"}))
	assert.False(t, sess.AllAnswered())

	require.NoError(t, sess.Responder("q2", RespostaSimNao{Sim: false}))
	assert.True(t, sess.AllAnswered())
}

func TestSessaoVaziaCompletaPorVacuidade(t *testing.T) {
	sess := novaSessao(1, 1)
	require.True(t, sess.aplicarPerguntas(1, nil))
	assert.True(t, sess.AllAnswered())
}

func TestSessaoRecusaCargaComTokenAntigo(t *testing.T) {
	sess := novaSessao(1, 2)
	assert.False(t, sess.aplicarPerguntas(1, MockPerguntas()), "carga da sessão anterior é descartada")
	assert.False(t, sess.Carregada())
}

func TestSessaoResponderPerguntaDesconhecida(t *testing.T) {
	sess := novaSessao(1, 1)
	require.True(t, sess.aplicarPerguntas(1, MockPerguntas()))

	err := sess.Responder("inexistente", RespostaTexto{Texto: "x"})
	assert.ErrorIs(t, err, ErrPerguntaDesconhecida)
}

func TestSessaoSobrescreveResposta(t *testing.T) {
	sess := novaSessao(1, 1)
	require.True(t, sess.aplicarPerguntas(1, []Pergunta{{ID: "q1", Tipo: TipoInteger}}))

	require.NoError(t, sess.Responder("q1", RespostaNumero{Numero: 1}))
	require.NoError(t, sess.Responder("q1", RespostaNumero{Numero: 5}))

	r, ok := sess.respostaDe("q1")
	require.True(t, ok)
	assert.Equal(t, RespostaNumero{Numero: 5}, r)
}
