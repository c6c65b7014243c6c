package produto

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DisponivelSim é o único valor do campo disponivel aceito como verdadeiro.
const DisponivelSim = "sim"

// ErrValorInvalido indica que o campo valor não é um número decimal finito.
var ErrValorInvalido = errors.New("valor do produto não é numérico")

// Produto é um item cadastrado pelo formulário. Não tem identificador.
type Produto struct {
	Nome       string  `json:"nome"`
	Descricao  string  `json:"descricao"`
	Valor      float64 `json:"valor"`
	Disponivel bool    `json:"disponivel"`
}

// Novo monta um Produto a partir dos campos crus do formulário.
// Nome e descrição são usados como vieram; disponivel só é verdadeiro
// quando for exatamente "sim".
func Novo(nome, descricao, valor, disponivel string) (Produto, error) {
	v, err := ParseValor(valor)
	if err != nil {
		return Produto{}, err
	}

	return Produto{
		Nome:       nome,
		Descricao:  descricao,
		Valor:      v,
		Disponivel: disponivel == DisponivelSim,
	}, nil
}

// ParseValor converte o texto do formulário em número. Aceita apenas
// decimais finitos: NaN, infinito e hexadecimal são recusados.
func ParseValor(valor string) (float64, error) {
	texto := strings.TrimSpace(valor)
	if hexadecimal(texto) {
		return 0, errors.Wrapf(ErrValorInvalido, "valor %q", valor)
	}

	v, err := strconv.ParseFloat(texto, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrValorInvalido, "valor %q", valor)
	}
	return v, nil
}

func hexadecimal(texto string) bool {
	texto = strings.TrimLeft(texto, "+-")
	return strings.HasPrefix(texto, "0x") || strings.HasPrefix(texto, "0X")
}

// OrdenarPorValor devolve uma nova lista ordenada pelo valor, do menor
// para o maior. Empates mantêm a ordem de cadastro.
func OrdenarPorValor(produtos []Produto) []Produto {
	ordenados := make([]Produto, len(produtos))
	copy(ordenados, produtos)

	sort.SliceStable(ordenados, func(i, j int) bool {
		return ordenados[i].Valor < ordenados[j].Valor
	})
	return ordenados
}
