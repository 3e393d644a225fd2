package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicateSKU        = errors.New("el SKU ya existe")
	ErrInvalidAmount       = errors.New("la cantidad debe ser un entero positivo")
	ErrNegativeStockDenied = errors.New("el producto no permite stock negativo")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
)
