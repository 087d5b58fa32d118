package recommending

import "errors"

var (
	// ErrEmptyPool indica que não restou nenhum candidato elegível após as
	// exclusões (itens do carrinho e inativos)
	ErrEmptyPool = errors.New("nenhum item elegível para recomendação")

	// ErrUnknownStrategy indica uma estratégia fora da enumeração fechada
	// (balanced, upsell, cross-sell)
	ErrUnknownStrategy = errors.New("estratégia de recomendação desconhecida")

	// ErrInvalidItemID indica um identificador de item malformado
	ErrInvalidItemID = errors.New("identificador de item inválido")
)
