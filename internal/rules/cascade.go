package rules

import (
	"strings"

	"grana/internal/model"
)

// rule pairs a keyword set with the category it assigns. The cascade is kept
// as data so its ordering can be inspected and tested on its own.
type rule struct {
	category model.Category
	keywords []string
}

// salaryKeywords route positive amounts into the salary category before the
// generic transfer-received fallback.
var salaryKeywords = []string{
	"salario", "folha de pagamento", "folha pgto", "provento",
	"remuneracao", "pgto salario", "credito salario", "holerite",
	"pro labore", "ferias", "13o",
}

// expenseCascade is evaluated top to bottom; the first matching rule wins.
// Ordering is load-bearing: market keywords run before food keywords so
// grocery purchases do not land in dining, and tax/fee keywords run before
// debt keywords so government charges do not land in debt service. Specific
// merchants run before the PIX fallback so a PIX payment to a known merchant
// keeps its merchant category.
var expenseCascade = []rule{
	{model.CategoryMercado, []string{
		"supermercado", "mercado", "atacadao", "atacado", "hortifruti",
		"sacolao", "mercearia", "emporio", "carrefour", "assai",
		"pao de acucar", "quitanda",
	}},
	{model.CategoryAlimentacao, []string{
		"ifood", "rappi", "restaurante", "lanchonete", "pizzaria",
		"pizza", "hamburgueria", "burger", "padaria", "confeitaria",
		"cafeteria", "churrascaria", "sushi", "delivery", "food",
		"lanches", "mcdonald", "subway",
	}},
	{model.CategoryImpostos, []string{
		"darf", "iptu", "ipva", "imposto", "tributo", "inss",
		"receita federal", "simples nacional",
	}},
	{model.CategoryTarifas, []string{
		"tarifa", "anuidade", "iof", "juros", "encargo", "multa",
		"cesta de servicos", "manutencao de conta", "taxa",
	}},
	{model.CategoryDividas, []string{
		"emprestimo", "financiamento", "consorcio", "refinanciamento",
		"credito pessoal", "parcela", "fatura cartao", "pagamento fatura",
		"pgto cartao",
	}},
	{model.CategoryAssinaturas, []string{
		"netflix", "spotify", "amazon prime", "prime video", "disney",
		"hbo", "globoplay", "youtube premium", "deezer", "icloud",
		"google one", "assinatura",
	}},
	{model.CategoryMoradia, []string{
		"aluguel", "condominio", "imobiliaria",
	}},
	{model.CategoryContas, []string{
		"energia", "enel", "cemig", "copel", "light", "sabesp",
		"saneamento", "agua", "internet", "vivo", "claro", "tim",
		"telefone", "gas",
	}},
	{model.CategorySaude, []string{
		"farmacia", "drogaria", "droga raia", "drogasil", "hospital",
		"clinica", "laboratorio", "plano de saude", "unimed", "amil",
		"odonto", "consulta",
	}},
	{model.CategoryTransporte, []string{
		"uber", "99app", "99 pop", "cabify", "combustivel", "posto",
		"gasolina", "etanol", "estacionamento", "pedagio", "metro",
		"onibus", "bilhete unico", "passagem",
	}},
	{model.CategoryEducacao, []string{
		"escola", "faculdade", "universidade", "curso", "mensalidade",
		"udemy", "alura", "livraria",
	}},
	{model.CategoryLazer, []string{
		"cinema", "teatro", "show", "ingresso", "viagem", "hotel",
		"pousada", "airbnb", "steam", "playstation", "xbox", "nintendo",
	}},
	{model.CategoryCompras, []string{
		"magazine", "magalu", "americanas", "casas bahia", "shopee",
		"aliexpress", "mercadolivre", "shein", "amazon", "lojas",
		"shopping",
	}},
	{model.CategoryPix, []string{
		"pix", "transferencia", "ted", "doc",
	}},
}

// deliveryKeywords mark delivery-style food purchases. The limit engine and
// the behavioral detectors both key off these.
var deliveryKeywords = []string{
	"ifood", "rappi", "delivery", "lanche", "burger", "pizza", "mcdonald",
}

// IsDelivery reports whether a description looks like a food-delivery or
// fast-food purchase.
func IsDelivery(description string) bool {
	normalized := Normalize(description)
	for _, kw := range deliveryKeywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// subscriptionKeywords are known recurring services; the hidden-recurring
// detector skips these because the user already knows about them.
var subscriptionKeywords = []string{
	"netflix", "spotify", "amazon prime", "prime video", "disney", "hbo",
	"globoplay", "youtube premium", "deezer", "icloud", "google one",
	"assinatura", "academia", "smartfit",
}

// IsKnownSubscription reports whether a description names a known
// subscription service.
func IsKnownSubscription(description string) bool {
	normalized := Normalize(description)
	for _, kw := range subscriptionKeywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// Result is the outcome of a classification.
type Result struct {
	Category  model.Category
	Direction model.Direction
}

// Classify maps a description and signed amount to a category and direction.
// It is deterministic and total: unmatched expenses fall back to OUTROS, and
// positive amounts short-circuit into the income branch.
func Classify(description string, signedAmount float64) Result {
	normalized := Normalize(description)

	if signedAmount > 0 {
		for _, kw := range salaryKeywords {
			if strings.Contains(normalized, kw) {
				return Result{Category: model.CategorySalario, Direction: model.DirectionIncome}
			}
		}
		return Result{Category: model.CategoryTransferenciaRecebida, Direction: model.DirectionIncome}
	}

	for _, r := range expenseCascade {
		for _, kw := range r.keywords {
			if strings.Contains(normalized, kw) {
				return Result{Category: r.category, Direction: model.DirectionExpense}
			}
		}
	}

	return Result{Category: model.CategoryOutros, Direction: model.DirectionExpense}
}
