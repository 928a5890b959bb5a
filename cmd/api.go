package cmd

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"promotor/infra"
	_midlleware "promotor/infra/middleware"
)

func StartAPI(ctx context.Context, container *infra.ContainerDI) {
	e := echo.New()

	go func() {
		for {
			select {
			case <-ctx.Done():
				if err := e.Shutdown(ctx); err != nil {
					panic(err)
				}
				return
			default:
				time.Sleep(1 * time.Second)
			}
		}
	}()

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: middleware.DefaultCORSConfig.AllowMethods,
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/promotor/login", container.LoginHandler.Login)
	e.POST("/promotor/logout", container.LoginHandler.Logout, _midlleware.CheckAuthorization)
	e.GET("/promotor/session", container.LoginHandler.Restore, _midlleware.CheckAuthorization)

	e.GET("/campanha/ativa", container.HandlerRotas.CampanhaAtivaHandler, _midlleware.CheckAuthorization)
	e.GET("/rotas/pendentes", container.HandlerRotas.PendentesHandler, _midlleware.CheckAuthorization)
	e.GET("/rotas/historico", container.HandlerRotas.HistoricoHandler, _midlleware.CheckAuthorization)
	e.PUT("/rota/:id/a-caminho", container.HandlerRotas.IrACaminhoHandler, _midlleware.CheckAuthorization)
	e.PUT("/rota/:id/checkin", container.HandlerRotas.CheckinHandler, _midlleware.CheckAuthorization)
	e.PUT("/rota/:id/cancelar", container.HandlerRotas.CancelarHandler, _midlleware.CheckAuthorization)
	e.GET("/rota/:id/feedback", container.HandlerRotas.FeedbackHandler, _midlleware.CheckAuthorization)
	e.POST("/rota/:id/retry", container.HandlerRotas.RetryHandler, _midlleware.CheckAuthorization)
	e.POST("/rota/:id/reset", container.HandlerRotas.ResetHandler, _midlleware.CheckAuthorization)
	e.GET("/rota/:id/historico", container.HandlerRotas.TransicoesHandler, _midlleware.CheckAuthorization)

	e.POST("/rota/:id/pesquisa", container.HandlerPesquisa.AbrirHandler, _midlleware.CheckAuthorization)
	e.DELETE("/rota/:id/pesquisa", container.HandlerPesquisa.FecharHandler, _midlleware.CheckAuthorization)
	e.PUT("/rota/:id/pesquisa/resposta", container.HandlerPesquisa.ResponderHandler, _midlleware.CheckAuthorization)
	e.PUT("/rota/:id/pesquisa/imagem", container.HandlerPesquisa.ResponderImagemHandler, _midlleware.CheckAuthorization)
	e.POST("/rota/:id/pesquisa/enviar", container.HandlerPesquisa.EnviarHandler, _midlleware.CheckAuthorization)
	e.GET("/rota/:id/pesquisa/feedback", container.HandlerPesquisa.FeedbackHandler, _midlleware.CheckAuthorization)
	e.POST("/rota/:id/pesquisa/retry", container.HandlerPesquisa.RetryHandler, _midlleware.CheckAuthorization)
	e.POST("/rota/:id/pesquisa/reset", container.HandlerPesquisa.ResetHandler, _midlleware.CheckAuthorization)

	e.GET("/ws", container.WsHandler.Acompanhar, _midlleware.CheckAuthorization)

	e.Logger.Fatal(e.Start(container.Config.ServerPort))
}
