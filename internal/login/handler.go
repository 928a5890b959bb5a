package login

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"

	"promotor/internal/get_token"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service}
}

// Login godoc
// @Summary Autentica um promotor.
// @Description Autentica por email e senha, ou por token do Google.
// @Tags Promotores
// @Accept json
// @Produce json
// @Param request body RequestLogin true "Login Request"
// @Success 200 {object} ResponseLogin "Promotor autenticado"
// @Failure 400 {string} string "Bad Request"
// @Failure 401 {string} string "Unauthorized"
// @Router /promotor/login [post]
func (h *Handler) Login(e echo.Context) error {
	var request RequestLogin
	if err := e.Bind(&request); err != nil {
		return e.JSON(http.StatusBadRequest, err.Error())
	}

	if request.Token == "" {
		if _, err := mail.ParseAddress(request.Email); err != nil {
			return e.JSON(http.StatusBadRequest, "invalid email address")
		}
		if request.Senha == "" {
			return e.JSON(http.StatusBadRequest, "senha é obrigatória")
		}
	}

	result, err := h.service.Login(e.Request().Context(), request)
	if err != nil {
		switch {
		case errors.Is(err, ErrPromotorNotFound), errors.Is(err, ErrInvalidCredentials):
			return e.JSON(http.StatusUnauthorized, err.Error())
		case errors.Is(err, ErrInvalidClientID):
			return e.JSON(http.StatusBadRequest, err.Error())
		default:
			return e.JSON(http.StatusInternalServerError, err.Error())
		}
	}

	return e.JSON(http.StatusOK, result)
}

// Restore godoc
// @Summary Restaura a sessão do promotor logado.
// @Description Confere o token e a sessão viva no redis.
// @Tags Promotores
// @Produce json
// @Success 200 {object} Promotor "Promotor"
// @Failure 401 {string} string "Unauthorized"
// @Router /promotor/session [get]
// @Security ApiKeyAuth
func (h *Handler) Restore(e echo.Context) error {
	payload := get_token.GetPromotorPayloadToken(e)

	if err := h.service.Restore(e.Request().Context(), payload.ID); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return e.JSON(http.StatusUnauthorized, err.Error())
		}
		return e.JSON(http.StatusInternalServerError, err.Error())
	}

	return e.JSON(http.StatusOK, Promotor{
		IDPromotor: payload.ID,
		Nome:       payload.Nome,
		Email:      payload.Email,
		CPF:        payload.CPF,
		IDClient:   payload.IDClient,
	})
}

// Logout godoc
// @Summary Encerra a sessão do promotor.
// @Tags Promotores
// @Success 200 {string} string "Success"
// @Router /promotor/logout [post]
// @Security ApiKeyAuth
func (h *Handler) Logout(e echo.Context) error {
	payload := get_token.GetPromotorPayloadToken(e)

	if err := h.service.Logout(e.Request().Context(), payload.ID); err != nil {
		return e.JSON(http.StatusInternalServerError, err.Error())
	}
	return e.JSON(http.StatusOK, "Success")
}
