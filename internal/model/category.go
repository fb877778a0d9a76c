package model

import "hash/fnv"

// Category tags a transaction. The well-known tags below form a closed set;
// any other string is treated as a user-defined category and rendered with a
// deterministic hash-assigned color.
type Category string

// Standard expense categories, in no particular order.
const (
	CategoryMercado        Category = "MERCADO"
	CategoryAlimentacao    Category = "ALIMENTACAO"
	CategoryTransporte     Category = "TRANSPORTE"
	CategoryMoradia        Category = "MORADIA"
	CategoryContas         Category = "CONTAS"
	CategorySaude          Category = "SAUDE"
	CategoryAssinaturas    Category = "ASSINATURAS"
	CategoryLazer          Category = "LAZER"
	CategoryCompras        Category = "COMPRAS"
	CategoryEducacao       Category = "EDUCACAO"
	CategoryPix            Category = "PIX"
	CategoryTarifas        Category = "TARIFAS"
	CategoryImpostos       Category = "IMPOSTOS"
	CategoryDividas        Category = "DIVIDAS"
	CategoryOutros         Category = "OUTROS"
)

// Standard income categories.
const (
	CategorySalario               Category = "SALARIO"
	CategoryTransferenciaRecebida Category = "TRANSFERENCIA_RECEBIDA"
)

var standardColors = map[Category]string{
	CategoryMercado:               "#4ECDC4",
	CategoryAlimentacao:           "#FF6B6B",
	CategoryTransporte:            "#95E1D3",
	CategoryMoradia:               "#F38181",
	CategoryContas:                "#FCE38A",
	CategorySaude:                 "#EAFFD0",
	CategoryAssinaturas:           "#A8D8EA",
	CategoryLazer:                 "#AA96DA",
	CategoryCompras:               "#FCBAD3",
	CategoryEducacao:              "#B5EAD7",
	CategoryPix:                   "#C7CEEA",
	CategoryTarifas:               "#FFDAC1",
	CategoryImpostos:              "#E2F0CB",
	CategoryDividas:               "#FF9AA2",
	CategoryOutros:                "#666666",
	CategorySalario:               "#4ECDC4",
	CategoryTransferenciaRecebida: "#95E1D3",
}

// openPalette is the color pool for user-defined categories.
var openPalette = []string{
	"#FF6B6B", "#4ECDC4", "#FFE66D", "#95E1D3", "#AA96DA",
	"#FCBAD3", "#A8D8EA", "#F38181", "#B5EAD7", "#FFDAC1",
}

// IsStandard reports whether c belongs to the closed set of well-known tags.
func (c Category) IsStandard() bool {
	_, ok := standardColors[c]
	return ok
}

// DisplayColor returns the hex color for rendering this category. Well-known
// tags have fixed colors; user-defined labels get a stable hash-based pick
// from the open palette.
func (c Category) DisplayColor() string {
	if color, ok := standardColors[c]; ok {
		return color
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(c))
	return openPalette[h.Sum32()%uint32(len(openPalette))]
}

// StandardCategories returns the closed set of expense tags. The order here
// carries no classification meaning; cascade order lives in the rules package.
func StandardCategories() []Category {
	return []Category{
		CategoryMercado, CategoryAlimentacao, CategoryTransporte,
		CategoryMoradia, CategoryContas, CategorySaude,
		CategoryAssinaturas, CategoryLazer, CategoryCompras,
		CategoryEducacao, CategoryPix, CategoryTarifas,
		CategoryImpostos, CategoryDividas, CategoryOutros,
	}
}
