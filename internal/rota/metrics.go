package rota

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var transicoesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "promotor_rota_transicoes_total",
	Help: "Transições de status aplicadas, por status de destino.",
}, []string{"status"})

var falhasOperacao = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "promotor_rota_falhas_total",
	Help: "Chamadas ao ERP que falharam, por status de destino.",
}, []string{"status"})
