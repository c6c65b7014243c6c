package local

import (
	"sync"
	"testing"

	"adalbertofjr/cadastro-produtos/internal/produto"
)

func TestInitDataSource(t *testing.T) {
	ds := InitDataSource()

	if ds == nil {
		t.Fatal("InitDataSource() retornou nil")
	}

	if ds.Count() != 0 {
		t.Errorf("esperado data source vazio, got %d items", ds.Count())
	}
}

func TestDataSource_Add(t *testing.T) {
	ds := InitDataSource()

	antes := ds.Count()
	ds.Add(produto.Produto{Nome: "Caneca", Valor: 25})

	if ds.Count() != antes+1 {
		t.Errorf("esperado %d produtos, got %d", antes+1, ds.Count())
	}
}

func TestDataSource_ListMantemOrdemDeCadastro(t *testing.T) {
	ds := InitDataSource()
	ds.Add(produto.Produto{Nome: "Caneca", Valor: 25})
	ds.Add(produto.Produto{Nome: "Copo", Valor: 10})
	ds.Add(produto.Produto{Nome: "Copo", Valor: 10})

	lista := ds.List()
	if len(lista) != 3 {
		t.Fatalf("esperado 3 produtos, got %d", len(lista))
	}

	if lista[0].Nome != "Caneca" || lista[1].Nome != "Copo" || lista[2].Nome != "Copo" {
		t.Errorf("ordem de cadastro não foi mantida: %+v", lista)
	}
}

func TestDataSource_ListRetornaCopia(t *testing.T) {
	ds := InitDataSource()
	ds.Add(produto.Produto{Nome: "Caneca", Valor: 25})

	lista := ds.List()
	lista[0].Nome = "Alterado"

	if ds.List()[0].Nome != "Caneca" {
		t.Error("alterar a lista retornada não deveria alterar o data source")
	}
}

func TestDataSource_AddConcorrente(t *testing.T) {
	ds := InitDataSource()

	var wg sync.WaitGroup
	total := 100

	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ds.Add(produto.Produto{Nome: "Copo", Valor: 10})
		}()
	}

	wg.Wait()

	if ds.Count() != total {
		t.Errorf("esperado %d produtos, got %d", total, ds.Count())
	}
}
