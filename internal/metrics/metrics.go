package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProdutosCadastrados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "produtos_cadastrados_total",
		Help: "Total de produtos cadastrados desde o início do processo",
	})

	CadastrosRejeitados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "produtos_cadastros_rejeitados_total",
		Help: "Total de cadastros rejeitados por valor inválido",
	})

	RequisicoesBloqueadas = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ratelimiter_requisicoes_bloqueadas_total",
		Help: "Total de requisições bloqueadas pelo rate limiter",
	}, []string{"tipo"})
)
