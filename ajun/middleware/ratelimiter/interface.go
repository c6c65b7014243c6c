package ratelimiter

import (
	"context"
	"time"
)

// Backend guarda os contadores de requisições por cliente. A chave é o IP
// do cliente ou o token enviado no header API_KEY.
type Backend interface {
	// Increment soma uma requisição na janela atual da chave e devolve o
	// total da janela. Uma janela nova começa quando a anterior expira.
	Increment(ctx context.Context, key string, window time.Duration) (int, error)
	// Block bloqueia a chave por duration e zera o contador.
	Block(ctx context.Context, key string, duration time.Duration) error
	// BlockedUntil devolve até quando a chave está bloqueada, ou o zero
	// de time.Time quando ela não está bloqueada.
	BlockedUntil(ctx context.Context, key string) (time.Time, error)
}
