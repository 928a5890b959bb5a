package login

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"promotor/infra/token"
	"promotor/pkg/crypt"
	"promotor/pkg/sso"
	"promotor/validation"
)

var (
	ErrPromotorNotFound   = errors.New("promotor not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidClientID    = errors.New("invalid client ID")
	ErrSessionExpired     = errors.New("session expired")
)

const sessionTTL = 24 * time.Hour

type ServiceInterface interface {
	Login(context.Context, RequestLogin) (ResponseLogin, error)
	Restore(ctx context.Context, idPromotor int64) error
	Logout(ctx context.Context, idPromotor int64) error
}

type Service struct {
	upstream       UpstreamInterface
	googleToken    sso.GoogleTokenInterface
	repository     RepositoryInterface
	maker          token.Maker
	rdb            *redis.Client
	googleClientID string
	log            *zap.Logger

	demoSenhaHash string
}

func NewService(
	upstream UpstreamInterface,
	googleToken sso.GoogleTokenInterface,
	repository RepositoryInterface,
	maker token.Maker,
	rdb *redis.Client,
	googleClientID string,
	log *zap.Logger,
) *Service {
	// senha do promotor de demonstração do modo offline
	demoHash, _ := crypt.HashPassword("123456")

	return &Service{
		upstream:       upstream,
		googleToken:    googleToken,
		repository:     repository,
		maker:          maker,
		rdb:            rdb,
		googleClientID: googleClientID,
		log:            log,
		demoSenhaHash:  demoHash,
	}
}

func (s *Service) Login(ctx context.Context, data RequestLogin) (ResponseLogin, error) {
	var response ResponseLogin

	emailSearch := data.Email
	viaGoogle := data.Token != ""
	if viaGoogle {
		googleToken, err := s.googleToken.Validation(ctx, data.Token)
		if err != nil {
			return response, err
		}
		if googleToken.Audience != s.googleClientID {
			return response, ErrInvalidClientID
		}
		emailSearch = googleToken.Email
	}

	if s.upstream != nil && !viaGoogle {
		upstreamResp, err := s.upstream.Login(ctx, data.Email, data.Senha)
		if err != nil {
			return response, err
		}
		response.Promotor.ParseFromPromotorAPI(upstreamResp.Promotor)
	} else {
		promotor, err := s.autenticarLocal(ctx, emailSearch, data.Senha, viaGoogle)
		if err != nil {
			return response, err
		}
		response.Promotor = promotor
	}

	p := response.Promotor
	if !validation.ValidateCPF(p.CPF) {
		s.log.Warn("promotor com cpf inválido no cadastro",
			zap.Int64("id_promotor", p.IDPromotor),
		)
	}

	tokenStr, err := s.maker.CreateTokenPromotor(
		p.IDPromotor,
		p.Nome,
		p.Email,
		p.CPF,
		p.IDClient,
		time.Now().Add(sessionTTL).UTC(),
	)
	if err != nil {
		return response, err
	}
	response.Token = tokenStr

	if err := s.registrarSessao(ctx, p.IDPromotor, tokenStr); err != nil {
		s.log.Warn("falha ao registrar sessão no redis", zap.Error(err))
	}

	return response, nil
}

// autenticarLocal cobre o modo offline e o caminho SSO: senha conferida
// contra a tabela promotores, ou contra o promotor de demonstração
// quando não há banco.
func (s *Service) autenticarLocal(ctx context.Context, email, senha string, viaGoogle bool) (Promotor, error) {
	if s.repository == nil {
		demo := demoPromotor()
		if email != demo.Email {
			return Promotor{}, ErrPromotorNotFound
		}
		if !viaGoogle && !crypt.CheckPasswordHash(senha, s.demoSenhaHash) {
			return Promotor{}, ErrInvalidCredentials
		}
		return demo, nil
	}

	row, err := s.repository.GetPromotorByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Promotor{}, ErrPromotorNotFound
		}
		return Promotor{}, err
	}

	if !viaGoogle && !crypt.CheckPasswordHash(senha, row.SenhaHash) {
		return Promotor{}, ErrInvalidCredentials
	}
	return row.Promotor, nil
}

// Restore confere se a sessão do promotor ainda existe no redis. Sem
// redis toda sessão com token válido é aceita.
func (s *Service) Restore(ctx context.Context, idPromotor int64) error {
	if s.rdb != nil {
		_, err := s.rdb.Get(ctx, chaveSessao(idPromotor)).Result()
		if errors.Is(err, redis.Nil) {
			return ErrSessionExpired
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) Logout(ctx context.Context, idPromotor int64) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, chaveSessao(idPromotor)).Err()
}

func (s *Service) registrarSessao(ctx context.Context, idPromotor int64, tokenStr string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, chaveSessao(idPromotor), tokenStr, sessionTTL).Err()
}

func chaveSessao(idPromotor int64) string {
	return fmt.Sprintf("sessao:promotor:%d", idPromotor)
}

func demoPromotor() Promotor {
	return Promotor{
		IDPromotor: 1,
		Nome:       "Carlos Silva",
		Email:      "carlos@email.com",
		CPF:        "12345678909",
		IDClient:   1,
	}
}
