package ordering

import "errors"

var (
	ErrOrderNotFound     = errors.New("pedido não encontrado")
	ErrEmptyOrder        = errors.New("pedido deve conter pelo menos um item")
	ErrItemUnavailable   = errors.New("item indisponível no cardápio")
	ErrInvalidQuantity   = errors.New("quantidade deve ser maior que zero")
	ErrInvalidTransition = errors.New("transição de status inválida")
	ErrOrderFinalized    = errors.New("pedido já finalizado")
)
