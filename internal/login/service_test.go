package login

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"promotor/infra/token"
)

func servicoOffline(t *testing.T) *Service {
	t.Helper()
	maker, err := token.NewPasetoMaker("12345678901234567890123456789012")
	require.NoError(t, err)
	return NewService(nil, nil, nil, maker, nil, "", zap.NewNop())
}

func TestLoginOfflineComDemo(t *testing.T) {
	svc := servicoOffline(t)

	res, err := svc.Login(context.Background(), RequestLogin{
		Email: "carlos@email.com",
		Senha: "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "Carlos Silva", res.Promotor.Nome)
	assert.NotEmpty(t, res.Token)
}

func TestLoginOfflineSenhaErrada(t *testing.T) {
	svc := servicoOffline(t)

	_, err := svc.Login(context.Background(), RequestLogin{
		Email: "carlos@email.com",
		Senha: "senha-errada",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginOfflineEmailDesconhecido(t *testing.T) {
	svc := servicoOffline(t)

	_, err := svc.Login(context.Background(), RequestLogin{
		Email: "outro@email.com",
		Senha: "123456",
	})
	assert.ErrorIs(t, err, ErrPromotorNotFound)
}

func TestTokenEmitidoVerifica(t *testing.T) {
	maker, err := token.NewPasetoMaker("12345678901234567890123456789012")
	require.NoError(t, err)
	svc := NewService(nil, nil, nil, maker, nil, "", zap.NewNop())

	res, err := svc.Login(context.Background(), RequestLogin{
		Email: "carlos@email.com",
		Senha: "123456",
	})
	require.NoError(t, err)

	payload, err := maker.VerifyTokenPromotor(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Promotor.IDPromotor, payload.ID)
	assert.Equal(t, "carlos@email.com", payload.Email)
}

func TestRestoreELogoutSemRedis(t *testing.T) {
	svc := servicoOffline(t)

	assert.NoError(t, svc.Restore(context.Background(), 1), "sem redis o token basta")
	assert.NoError(t, svc.Logout(context.Background(), 1))
}
