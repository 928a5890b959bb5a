package feedback

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// State acompanha o ciclo de vida de uma chamada externa do ponto de
// vista de quem está esperando o modal de feedback.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Options configura o atraso simulado e a chance de erro simulada.
// Ambos existem para o modo demo/offline; com backend real ficam em zero.
type Options struct {
	Delay       time.Duration
	ErrorChance float64
	AutoReset   time.Duration
}

type Result[R any] struct {
	Ok    bool
	Value R
}

// Action embrulha uma operação assíncrona com os estados
// idle/loading/success/error, guardando o último argumento para retry.
//
// Cada Execute incrementa um número de sequência; uma conclusão que
// chega carregando uma sequência superada não publica estado nenhum.
// Isso cobre o caso do modal fechado antes da resposta chegar.
type Action[A, R any] struct {
	mu      sync.Mutex
	op      func(ctx context.Context, arg A) (R, error)
	opts    Options
	state   State
	lastArg A
	hasLast bool
	seq     uint64
	timer   *time.Timer
	chance  func() float64
}

func NewAction[A, R any](op func(ctx context.Context, arg A) (R, error), opts Options) *Action[A, R] {
	return &Action[A, R]{
		op:     op,
		opts:   opts,
		state:  StateIdle,
		chance: rand.Float64,
	}
}

func (a *Action[A, R]) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Execute roda a operação e publica o estado final. Um Execute novo no
// meio de outro assume o mesmo slot de estado: vale o último que começou.
func (a *Action[A, R]) Execute(ctx context.Context, arg A) Result[R] {
	a.mu.Lock()
	a.seq++
	mine := a.seq
	a.lastArg = arg
	a.hasLast = true
	a.state = StateLoading
	a.stopTimerLocked()
	a.mu.Unlock()

	if a.opts.Delay > 0 {
		select {
		case <-time.After(a.opts.Delay):
		case <-ctx.Done():
			a.publish(mine, StateError)
			return Result[R]{Ok: false}
		}
	}

	if a.opts.ErrorChance > 0 && a.chance() < a.opts.ErrorChance {
		a.publish(mine, StateError)
		return Result[R]{Ok: false}
	}

	value, err := a.op(ctx, arg)
	if err != nil {
		a.publish(mine, StateError)
		return Result[R]{Ok: false}
	}

	if a.publish(mine, StateSuccess) && a.opts.AutoReset > 0 {
		a.armAutoReset(mine)
	}

	return Result[R]{Ok: true, Value: value}
}

// Retry reexecuta com o último argumento usado. Sem invocação anterior
// não há o que repetir.
func (a *Action[A, R]) Retry(ctx context.Context) Result[R] {
	a.mu.Lock()
	if !a.hasLast {
		a.mu.Unlock()
		return Result[R]{Ok: false}
	}
	arg := a.lastArg
	a.mu.Unlock()

	return a.Execute(ctx, arg)
}

// Reset volta para idle e invalida qualquer conclusão pendente.
func (a *Action[A, R]) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	a.state = StateIdle
	a.stopTimerLocked()
}

func (a *Action[A, R]) publish(mine uint64, s State) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seq != mine {
		return false
	}
	a.state = s
	return true
}

func (a *Action[A, R]) armAutoReset(mine uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seq != mine {
		return
	}
	a.stopTimerLocked()
	a.timer = time.AfterFunc(a.opts.AutoReset, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.seq != mine {
			return
		}
		a.state = StateIdle
	})
}

func (a *Action[A, R]) stopTimerLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
