package pesquisa

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"promotor/internal/rota"
	"promotor/validation"
)

type Handler struct {
	Service *Service
}

func NewPesquisaHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type RespostaRequest struct {
	IDPergunta string `json:"id_pergunta" validate:"required"`
	Valor      string `json:"valor" validate:"required"`
}

type EnviarRequest struct {
	Obs      string         `json:"obs"`
	Redirect *rota.Redirect `json:"redirect"`
}

type FeedbackResponse struct {
	Operacao string `json:"operacao"`
	State    string `json:"state"`
}

// AbrirHandler godoc
// @Summary Abre a pesquisa da rota.
// @Description Cria uma sessão nova, descartando respostas anteriores, e carrega o questionário da campanha.
// @Tags Pesquisa
// @Produce json
// @Param id path string true "Id da rota"
// @Success 200 {object} AberturaDTO "Questionário"
// @Failure 409 {string} string "Conflict"
// @Router /rota/{id}/pesquisa [post]
// @Security ApiKeyAuth
func (h *Handler) AbrirHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	result, err := h.Service.Abrir(c.Request().Context(), id)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ResponderHandler godoc
// @Summary Grava a resposta de uma pergunta.
// @Description O valor textual é convertido para o tipo declarado da pergunta.
// @Tags Pesquisa
// @Accept json
// @Produce json
// @Param id path string true "Id da rota"
// @Param request body RespostaRequest true "Resposta"
// @Success 200 {string} string "Success"
// @Failure 400 {string} string "Bad Request"
// @Router /rota/{id}/pesquisa/resposta [put]
// @Security ApiKeyAuth
func (h *Handler) ResponderHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	var request RespostaRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	if err := validation.Validate(request); err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	if err := h.Service.ResponderValor(id, request.IDPergunta, request.Valor); err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(http.StatusOK, "Success")
}

// ResponderImagemHandler godoc
// @Summary Anexa a foto de uma pergunta de imagem.
// @Description Multipart com o campo file; o upload para o bucket só acontece no envio.
// @Tags Pesquisa
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Id da rota"
// @Param id_pergunta formData string true "Id da pergunta"
// @Param file formData file true "Imagem"
// @Success 200 {string} string "Success"
// @Failure 400 {string} string "Bad Request"
// @Router /rota/{id}/pesquisa/imagem [put]
// @Security ApiKeyAuth
func (h *Handler) ResponderImagemHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	idPergunta := c.FormValue("id_pergunta")
	if idPergunta == "" {
		return c.JSON(http.StatusBadRequest, "id_pergunta é obrigatório")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	defer file.Close()

	conteudo, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.Service.ResponderImagem(id, idPergunta, fileHeader.Filename, contentType, conteudo); err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(http.StatusOK, "Success")
}

// EnviarHandler godoc
// @Summary Envia a pesquisa e finaliza a rota.
// @Description Resolve as imagens pendentes, envia um resultado por pergunta e marca a rota como FINALIZADO. Falha de upload aborta tudo.
// @Tags Pesquisa
// @Accept json
// @Produce json
// @Param id path string true "Id da rota"
// @Param request body EnviarRequest true "Observação e redirect"
// @Success 200 {array} CampanhaResult "Resultados"
// @Failure 409 {string} string "Conflict"
// @Failure 502 {string} string "Bad Gateway"
// @Router /rota/{id}/pesquisa/enviar [post]
// @Security ApiKeyAuth
func (h *Handler) EnviarHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	var request EnviarRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	result, err := h.Service.Enviar(c.Request().Context(), id, request.Obs, request.Redirect)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// FecharHandler godoc
// @Summary Abandona a pesquisa sem enviar.
// @Description As respostas são descartadas e a rota continua EM ANDAMENTO.
// @Tags Pesquisa
// @Param id path string true "Id da rota"
// @Success 200 {string} string "Success"
// @Router /rota/{id}/pesquisa [delete]
// @Security ApiKeyAuth
func (h *Handler) FecharHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	h.Service.Fechar(id)
	return c.JSON(http.StatusOK, "Success")
}

// FeedbackHandler godoc
// @Summary Estado de feedback da carga ou do envio.
// @Tags Pesquisa
// @Produce json
// @Param id path string true "Id da rota"
// @Param op query string true "pesquisa ou enviar"
// @Success 200 {object} FeedbackResponse "Estado"
// @Router /rota/{id}/pesquisa/feedback [get]
// @Security ApiKeyAuth
func (h *Handler) FeedbackHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	op := Op(c.QueryParam("op"))
	if !op.Valida() {
		return c.JSON(http.StatusBadRequest, "operação desconhecida")
	}
	return c.JSON(http.StatusOK, FeedbackResponse{
		Operacao: string(op),
		State:    string(h.Service.Feedback(id, op)),
	})
}

// RetryHandler godoc
// @Summary Repete a carga ou o envio que falhou.
// @Tags Pesquisa
// @Produce json
// @Param id path string true "Id da rota"
// @Param op query string true "pesquisa ou enviar"
// @Success 200 {string} string "Success"
// @Failure 502 {string} string "Bad Gateway"
// @Router /rota/{id}/pesquisa/retry [post]
// @Security ApiKeyAuth
func (h *Handler) RetryHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	op := Op(c.QueryParam("op"))
	if !op.Valida() {
		return c.JSON(http.StatusBadRequest, "operação desconhecida")
	}

	if err := h.Service.Retry(c.Request().Context(), id, op); err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(http.StatusOK, "Success")
}

// ResetHandler godoc
// @Summary Volta o feedback da operação para idle.
// @Tags Pesquisa
// @Param id path string true "Id da rota"
// @Param op query string true "pesquisa ou enviar"
// @Success 200 {string} string "Success"
// @Router /rota/{id}/pesquisa/reset [post]
// @Security ApiKeyAuth
func (h *Handler) ResetHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	op := Op(c.QueryParam("op"))
	if !op.Valida() {
		return c.JSON(http.StatusBadRequest, "operação desconhecida")
	}

	h.Service.Reset(id, op)
	return c.JSON(http.StatusOK, "Success")
}

func respostaErro(c echo.Context, err error) error {
	switch {
	case errors.Is(err, rota.ErrRotaNaoEncontrada), errors.Is(err, ErrSemSessao):
		return c.JSON(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrRespostaVazia),
		errors.Is(err, ErrRespostaTipoErrado),
		errors.Is(err, ErrPerguntaDesconhecida):
		return c.JSON(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrRotaSemCheckin),
		errors.Is(err, ErrPesquisaCarregando),
		errors.Is(err, ErrPesquisaIncompleta):
		return c.JSON(http.StatusConflict, err.Error())
	case errors.Is(err, rota.ErrOperacaoFalhou):
		return c.JSON(http.StatusBadGateway, err.Error())
	default:
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
}
