package feedback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSuccess(t *testing.T) {
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		return "ok", nil
	}, Options{})

	require.Equal(t, StateIdle, acao.State())

	res := acao.Execute(context.Background(), 1)
	require.True(t, res.Ok)
	assert.Equal(t, "ok", res.Value)
	assert.Equal(t, StateSuccess, acao.State())
}

func TestExecuteError(t *testing.T) {
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		return "", errors.New("upstream fora do ar")
	}, Options{})

	res := acao.Execute(context.Background(), 1)
	require.False(t, res.Ok)
	assert.Equal(t, StateError, acao.State())
}

func TestRetryUsaUltimoArgumento(t *testing.T) {
	var chamadas []int
	falhar := true
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		chamadas = append(chamadas, arg)
		if falhar {
			return "", errors.New("falha transitória")
		}
		return "ok", nil
	}, Options{})

	res := acao.Execute(context.Background(), 42)
	require.False(t, res.Ok)

	falhar = false
	res = acao.Retry(context.Background())
	require.True(t, res.Ok)

	assert.Equal(t, []int{42, 42}, chamadas)
	assert.Equal(t, StateSuccess, acao.State())
}

func TestRetrySemExecucaoAnterior(t *testing.T) {
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		t.Fatal("não deveria executar")
		return "", nil
	}, Options{})

	res := acao.Retry(context.Background())
	assert.False(t, res.Ok)
	assert.Equal(t, StateIdle, acao.State())
}

func TestResetVoltaParaIdle(t *testing.T) {
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		return "ok", nil
	}, Options{})

	acao.Execute(context.Background(), 1)
	require.Equal(t, StateSuccess, acao.State())

	acao.Reset()
	assert.Equal(t, StateIdle, acao.State())
}

func TestErrorChanceForcaErro(t *testing.T) {
	executou := false
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		executou = true
		return "ok", nil
	}, Options{ErrorChance: 0.5})
	acao.chance = func() float64 { return 0.1 }

	res := acao.Execute(context.Background(), 1)
	require.False(t, res.Ok)
	assert.False(t, executou, "o sorteio de erro acontece antes da operação")
	assert.Equal(t, StateError, acao.State())
}

func TestErrorChanceDeixaPassar(t *testing.T) {
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		return "ok", nil
	}, Options{ErrorChance: 0.5})
	acao.chance = func() float64 { return 0.9 }

	res := acao.Execute(context.Background(), 1)
	assert.True(t, res.Ok)
}

func TestDelayRespeitaCancelamento(t *testing.T) {
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		t.Fatal("não deveria executar depois do cancelamento")
		return "", nil
	}, Options{Delay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := acao.Execute(ctx, 1)
	require.False(t, res.Ok)
	assert.Equal(t, StateError, acao.State())
}

func TestAutoResetVoltaParaIdle(t *testing.T) {
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		return "ok", nil
	}, Options{AutoReset: 20 * time.Millisecond})

	res := acao.Execute(context.Background(), 1)
	require.True(t, res.Ok)
	require.Equal(t, StateSuccess, acao.State())

	assert.Eventually(t, func() bool {
		return acao.State() == StateIdle
	}, time.Second, 5*time.Millisecond)
}

func TestExecuteNovoInvalidaConclusaoAntiga(t *testing.T) {
	bloqueio := make(chan struct{})
	comecou := make(chan struct{})
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		if arg == 1 {
			close(comecou)
			<-bloqueio
			return "antiga", nil
		}
		return "nova", errors.New("a nova falhou")
	}, Options{})

	done := make(chan Result[string])
	go func() {
		done <- acao.Execute(context.Background(), 1)
	}()

	// a segunda execução assume o slot de estado
	<-comecou
	res2 := acao.Execute(context.Background(), 2)
	require.False(t, res2.Ok)
	require.Equal(t, StateError, acao.State())

	close(bloqueio)
	res1 := <-done
	require.True(t, res1.Ok, "o chamador antigo ainda recebe o valor")
	assert.Equal(t, StateError, acao.State(), "a conclusão superada não sobrescreve o estado")
}

func TestResetInvalidaConclusaoPendente(t *testing.T) {
	bloqueio := make(chan struct{})
	comecou := make(chan struct{})
	acao := NewAction(func(ctx context.Context, arg int) (string, error) {
		close(comecou)
		<-bloqueio
		return "ok", nil
	}, Options{})

	done := make(chan Result[string])
	go func() {
		done <- acao.Execute(context.Background(), 1)
	}()

	<-comecou
	acao.Reset()

	close(bloqueio)
	<-done
	assert.Equal(t, StateIdle, acao.State())
}
