package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"adalbertofjr/cadastro-produtos/internal/metrics"
	"adalbertofjr/cadastro-produtos/internal/produto"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed templates/*.html
var templatesFS embed.FS

var indexTemplate = template.Must(
	template.New("index.html").
		Funcs(template.FuncMap{"moeda": produto.FormatarMoeda}).
		ParseFS(templatesFS, "templates/index.html"))

// ProductStore é o repositório usado pelos handlers. Hoje é a lista em
// memória de local.DataSource.
type ProductStore interface {
	Add(p produto.Produto)
	List() []produto.Produto
}

type Handler struct {
	store  ProductStore
	logger *zap.Logger
}

func NewHandler(store ProductStore, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"OK"}`))
}

// ListProductsHandler renderiza a página com o formulário e os produtos
// ordenados pelo valor.
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Produtos []produto.Produto
	}{
		Produtos: produto.OrdenarPorValor(h.store.List()),
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("erro ao renderizar listagem", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) ListProductsJSONHandler(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(produto.OrdenarPorValor(h.store.List()))
	if err != nil {
		h.logger.Error("erro ao serializar produtos", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// CreateProductHandler cadastra o produto enviado pelo formulário e
// redireciona para a listagem. Valor não numérico responde 500 sem
// cadastrar nada.
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	p, err := produto.Novo(
		r.PostFormValue("nome"),
		r.PostFormValue("descricao"),
		r.PostFormValue("valor"),
		r.PostFormValue("disponivel"),
	)
	if err != nil {
		metrics.CadastrosRejeitados.Inc()
		h.logger.Error("erro ao cadastrar produto", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.store.Add(p)
	metrics.ProdutosCadastrados.Inc()
	h.logger.Info("produto cadastrado",
		zap.String("nome", p.Nome),
		zap.Float64("valor", p.Valor),
		zap.Bool("disponivel", p.Disponivel))

	http.Redirect(w, r, "/", http.StatusFound)
}
