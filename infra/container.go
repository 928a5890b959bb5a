package infra

import (
	"database/sql"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"promotor/infra/database"
	"promotor/infra/database/db_postgresql"
	"promotor/infra/token"
	"promotor/internal/feedback"
	"promotor/internal/historico"
	"promotor/internal/login"
	"promotor/internal/pesquisa"
	"promotor/internal/rota"
	"promotor/internal/ws"
	"promotor/pkg"
	"promotor/pkg/gps"
	bucket "promotor/pkg/s3"
	"promotor/pkg/sso"
)

type ContainerDI struct {
	Config Config
	ConnDB *sql.DB
	Log    *zap.Logger
	Rdb    *redis.Client

	Store          *rota.Store
	Distancia      *gps.Distancia
	Bucket         *bucket.Bucket
	GoogleToken    *sso.GoogleToken
	PasetoMaker    *token.Maker
	Hub            *ws.Hub
	RepositoryHist historico.InterfaceRepository

	LoginRepository *login.Repository
	LoginService    *login.Service
	LoginHandler    *login.Handler

	Controller    *rota.Controller
	ServiceRotas  *rota.Service
	HandlerRotas  *rota.Handler
	WsHandler     *ws.Handler

	ServicePesquisa *pesquisa.Service
	HandlerPesquisa *pesquisa.Handler
}

func NewContainerDI(config Config) *ContainerDI {
	container := &ContainerDI{Config: config}
	container.db()
	container.buildPkg()
	container.buildRepository()
	container.buildService()
	container.buildHandler()
	return container
}

// db conecta no Postgres quando há host configurado. Sem banco o
// serviço sobe do mesmo jeito, com histórico em memória.
func (c *ContainerDI) db() {
	if c.Config.DBHost == "" {
		return
	}
	dbConfig := database.Config{
		Host:        c.Config.DBHost,
		Port:        c.Config.DBPort,
		User:        c.Config.DBUser,
		Password:    c.Config.DBPassword,
		Database:    c.Config.DBDatabase,
		SSLMode:     c.Config.DBSSLMode,
		Driver:      c.Config.DBDriver,
		Environment: c.Config.Environment,
	}
	c.ConnDB = db_postgresql.NewConnection(&dbConfig)
}

func (c *ContainerDI) buildPkg() {
	if c.Config.Environment == "prd" {
		c.Log, _ = zap.NewProduction()
	} else {
		c.Log, _ = zap.NewDevelopment()
	}

	c.Rdb = pkg.InitRedis(c.Config.RedisUrl)

	c.GoogleToken = sso.NewGoogleToken()
	maker, _ := token.NewPasetoMaker(c.Config.SignatureToken)
	c.PasetoMaker = &maker

	distancia, err := gps.NewDistancia(c.Config.GoogleMapsKey)
	if err != nil {
		c.Log.Warn("google maps indisponível, distâncias ficam vazias", zap.Error(err))
	}
	c.Distancia = distancia

	b, err := bucket.NewBucket(
		c.Config.AwsAccessKeyID,
		c.Config.AwsSecretAccessKey,
		c.Config.AwsRegion,
		c.Config.AwsBucketName,
	)
	if err != nil {
		c.Log.Warn("bucket indisponível, perguntas de imagem não podem ser enviadas", zap.Error(err))
	}
	c.Bucket = b

	c.Store = rota.NewStore()
	c.Hub = ws.NewHub()
	go c.Hub.Run()
}

func (c *ContainerDI) buildRepository() {
	if c.ConnDB != nil {
		c.RepositoryHist = historico.NewHistoricoRepository(c.ConnDB)
		c.LoginRepository = login.NewLoginRepository(c.ConnDB)
	} else {
		c.RepositoryHist = historico.NewMemoryRepository()
	}
}

func (c *ContainerDI) buildService() {
	opts := feedback.Options{
		Delay:       c.Config.FeedbackDelay,
		ErrorChance: c.Config.FeedbackErrorChance,
		AutoReset:   c.Config.FeedbackAutoReset,
	}

	var campanhaClient rota.CampanhaClient
	var statusClient rota.StatusClient
	var perguntasClient pesquisa.PerguntasClient
	var upstreamLogin login.UpstreamInterface
	if !c.Config.Offline() {
		rotaClient := rota.NewClient(c.Config.ApiBaseUrl, c.Log)
		campanhaClient = rotaClient
		statusClient = rotaClient
		perguntasClient = pesquisa.NewClient(c.Config.ApiBaseUrl, c.Log)
		upstreamLogin = login.NewClient(c.Config.ApiBaseUrl)
	}

	var loginRepo login.RepositoryInterface
	if c.LoginRepository != nil {
		loginRepo = c.LoginRepository
	}
	c.LoginService = login.NewService(
		upstreamLogin,
		c.GoogleToken,
		loginRepo,
		*c.PasetoMaker,
		c.Rdb,
		c.Config.GoogleClientId,
		c.Log,
	)

	c.Controller = rota.NewController(
		c.Store,
		statusClient,
		c.RepositoryHist,
		c.Hub,
		&rota.LogNavegador{Log: c.Log},
		opts,
		c.Log,
	)
	c.ServiceRotas = rota.NewRotasService(c.Store, campanhaClient, c.Distancia, c.Log)

	var uploader pesquisa.Uploader
	if c.Bucket != nil {
		uploader = c.Bucket
	}
	c.ServicePesquisa = pesquisa.NewPesquisaService(
		perguntasClient,
		c.Rdb,
		uploader,
		c.Controller,
		c.Store,
		c.RepositoryHist,
		opts,
		c.Log,
	)
}

func (c *ContainerDI) buildHandler() {
	c.LoginHandler = login.NewHandler(c.LoginService)
	c.HandlerRotas = rota.NewRotasHandler(c.ServiceRotas, c.Controller, c.RepositoryHist)
	c.HandlerPesquisa = pesquisa.NewPesquisaHandler(c.ServicePesquisa)
	c.WsHandler = ws.NewWsHandler(c.Hub)
}
