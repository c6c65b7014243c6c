package local

import (
	"sync"

	"adalbertofjr/cadastro-produtos/internal/produto"
)

// DataSource guarda os produtos em memória enquanto o processo estiver
// de pé. Tudo é perdido ao reiniciar.
type DataSource struct {
	mu       sync.RWMutex
	produtos []produto.Produto
}

func InitDataSource() *DataSource {
	return &DataSource{
		produtos: make([]produto.Produto, 0),
	}
}

func (ds *DataSource) Add(p produto.Produto) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.produtos = append(ds.produtos, p)
}

// List devolve uma cópia dos produtos na ordem de cadastro.
func (ds *DataSource) List() []produto.Produto {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	copia := make([]produto.Produto, len(ds.produtos))
	copy(copia, ds.produtos)
	return copia
}

func (ds *DataSource) Count() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	return len(ds.produtos)
}
