package middleware

import (
	"net/http"
	"os"
	"promotor/infra/token"
	"strings"

	"github.com/labstack/echo/v4"
)

func CheckAuthorization(handlerFunc echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		bearerToken := c.Request().Header.Get("Authorization")
		tokenStr := strings.Replace(bearerToken, "Bearer ", "", 1)

		maker, err := token.NewPasetoMaker(os.Getenv("SIGNATURE_STRING"))
		if err != nil {
			return c.JSON(http.StatusBadGateway, err.Error())
		}

		tokenPayload, err := maker.VerifyTokenPromotor(tokenStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, err.Error())
		}
		c.Set("token_id_promotor", tokenPayload.ID)
		c.Set("token_nome", tokenPayload.Nome)
		c.Set("token_email", tokenPayload.Email)
		c.Set("token_cpf", tokenPayload.CPF)
		c.Set("token_id_client", tokenPayload.IDClient)
		c.Set("token_expired_at", tokenPayload.ExpiredAt)

		return handlerFunc(c)
	}
}
