package classifying

import "errors"

var (
	// ErrInsufficientData indica que a população ativa está vazia e nenhum
	// limiar pode ser derivado. A operação não produz resultado algum em vez
	// de chutar um padrão.
	ErrInsufficientData = errors.New("não há itens ativos suficientes para calcular os limiares")

	// ErrItemNotFound indica que o item solicitado não existe ou está inativo
	ErrItemNotFound = errors.New("item do cardápio não encontrado")
)
