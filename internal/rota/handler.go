package rota

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"promotor/internal/get_token"
	"promotor/internal/historico"
	"promotor/pkg/gps"
	"promotor/validation"
)

type Handler struct {
	InterfaceService InterfaceService
	Controller       *Controller
	Historico        historico.InterfaceRepository
}

func NewRotasHandler(InterfaceService InterfaceService, controller *Controller, hist historico.InterfaceRepository) *Handler {
	return &Handler{
		InterfaceService: InterfaceService,
		Controller:       controller,
		Historico:        hist,
	}
}

type CancelarRequest struct {
	Obs string `json:"obs" validate:"required"`
}

type FeedbackResponse struct {
	Operacao string `json:"operacao"`
	State    string `json:"state"`
}

// CampanhaAtivaHandler godoc
// @Summary Carrega a campanha ativa do promotor.
// @Description Busca a campanha ativa e reconstrói a rota do dia.
// @Tags Rotas
// @Produce json
// @Param posicao query string false "Posição do promotor lat,lng"
// @Success 200 {object} CampanhaAtivaDTO "Campanha"
// @Failure 502 {string} string "Bad Gateway"
// @Router /campanha/ativa [get]
// @Security ApiKeyAuth
func (h *Handler) CampanhaAtivaHandler(c echo.Context) error {
	payload := get_token.GetPromotorPayloadToken(c)

	result, err := h.InterfaceService.CarregarCampanhaAtiva(c.Request().Context(), payload.ID, c.QueryParam("posicao"))
	if err != nil {
		return c.JSON(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// PendentesHandler godoc
// @Summary Lista as rotas pendentes.
// @Description Rotas não terminais ordenadas por proximidade.
// @Tags Rotas
// @Produce json
// @Success 200 {array} Rota "Rotas"
// @Router /rotas/pendentes [get]
// @Security ApiKeyAuth
func (h *Handler) PendentesHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.InterfaceService.Pendentes())
}

// HistoricoHandler godoc
// @Summary Lista as visitas encerradas.
// @Tags Rotas
// @Produce json
// @Success 200 {array} Rota "Rotas"
// @Router /rotas/historico [get]
// @Security ApiKeyAuth
func (h *Handler) HistoricoHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.InterfaceService.Historico())
}

// IrACaminhoHandler godoc
// @Summary Inicia o deslocamento até a oficina.
// @Description Move a rota para A CAMINHO e devolve o deep link de navegação.
// @Tags Rotas
// @Produce json
// @Param id path string true "Id da rota"
// @Param app query string false "google ou waze"
// @Success 200 {object} TransicaoResultado "Resultado"
// @Failure 409 {string} string "Conflict"
// @Router /rota/{id}/a-caminho [put]
// @Security ApiKeyAuth
func (h *Handler) IrACaminhoHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	app := gps.App(c.QueryParam("app"))
	if app == "" {
		app = gps.AppGoogle
	}

	result, err := h.Controller.IrACaminho(c.Request().Context(), id, app)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// CheckinHandler godoc
// @Summary Registra a chegada na oficina.
// @Tags Rotas
// @Produce json
// @Param id path string true "Id da rota"
// @Success 200 {object} TransicaoResultado "Resultado"
// @Failure 409 {string} string "Conflict"
// @Router /rota/{id}/checkin [put]
// @Security ApiKeyAuth
func (h *Handler) CheckinHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	result, err := h.Controller.Checkin(c.Request().Context(), id)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// CancelarHandler godoc
// @Summary Cancela a visita.
// @Description Observação obrigatória; sem ela nada é enviado ao ERP.
// @Tags Rotas
// @Accept json
// @Produce json
// @Param id path string true "Id da rota"
// @Param request body CancelarRequest true "Motivo"
// @Success 200 {object} TransicaoResultado "Resultado"
// @Failure 400 {string} string "Bad Request"
// @Router /rota/{id}/cancelar [put]
// @Security ApiKeyAuth
func (h *Handler) CancelarHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	var request CancelarRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	if err := validation.Validate(request); err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	result, err := h.Controller.Cancelar(c.Request().Context(), id, request.Obs)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// FeedbackHandler godoc
// @Summary Estado de feedback de uma operação.
// @Tags Rotas
// @Produce json
// @Param id path string true "Id da rota"
// @Param op query string true "navegar, checkin ou cancelar"
// @Success 200 {object} FeedbackResponse "Estado"
// @Router /rota/{id}/feedback [get]
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
		State:    string(h.Controller.Feedback(id, op)),
	})
}

// RetryHandler godoc
// @Summary Repete a última operação que falhou.
// @Tags Rotas
// @Produce json
// @Param id path string true "Id da rota"
// @Param op query string true "navegar, checkin ou cancelar"
// @Success 200 {object} TransicaoResultado "Resultado"
// @Failure 502 {string} string "Bad Gateway"
// @Router /rota/{id}/retry [post]
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

	result, err := h.Controller.Retry(c.Request().Context(), id, op)
	if err != nil {
		return respostaErro(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ResetHandler godoc
// @Summary Volta o feedback da operação para idle.
// @Tags Rotas
// @Param id path string true "Id da rota"
// @Param op query string true "navegar, checkin ou cancelar"
// @Success 200 {string} string "Success"
// @Router /rota/{id}/reset [post]
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

	h.Controller.Reset(id, op)
	return c.JSON(http.StatusOK, "Success")
}

// TransicoesHandler godoc
// @Summary Trilha de transições de uma rota.
// @Tags Rotas
// @Produce json
// @Param id path string true "Id da rota"
// @Success 200 {array} historico.Transicao "Transições"
// @Router /rota/{id}/historico [get]
// @Security ApiKeyAuth
func (h *Handler) TransicoesHandler(c echo.Context) error {
	id, err := validation.ParseStringToInt64(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	result, err := h.Historico.TransicoesPorRota(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func respostaErro(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrRotaNaoEncontrada):
		return c.JSON(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrObsObrigatoria):
		return c.JSON(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrRotaEncerrada),
		errors.Is(err, ErrTransicaoInvalida),
		errors.Is(err, ErrRotaAtiva):
		return c.JSON(http.StatusConflict, err.Error())
	case errors.Is(err, ErrOperacaoFalhou):
		return c.JSON(http.StatusBadGateway, err.Error())
	default:
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
}
