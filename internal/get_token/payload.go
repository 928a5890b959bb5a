package get_token

import (
	"time"

	"github.com/labstack/echo/v4"
)

func GetPromotorPayloadToken(c echo.Context) PayloadPromotorDTO {
	strID, _ := c.Get("token_id_promotor").(int64)
	strNome, _ := c.Get("token_nome").(string)
	strEmail, _ := c.Get("token_email").(string)
	strCPF, _ := c.Get("token_cpf").(string)
	strIDClient, _ := c.Get("token_id_client").(int64)
	strExpiredAt, _ := c.Get("token_expired_at").(time.Time)

	return PayloadPromotorDTO{
		ID:        strID,
		Nome:      strNome,
		Email:     strEmail,
		CPF:       strCPF,
		IDClient:  strIDClient,
		ExpiredAt: strExpiredAt,
	}
}
