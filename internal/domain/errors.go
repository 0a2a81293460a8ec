package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Identidad sin fila en users: debe ejecutar /start primero.
	ErrNotRegistered = errors.New("usuario no registrado")

	// Registro y aprobación de vendedores.
	ErrDuplicatePendingApplication = errors.New("ya existe una solicitud pendiente")
	ErrApplicationAlreadyProcessed = errors.New("la solicitud ya fue procesada")
	ErrNoActiveRegistration        = errors.New("no hay un registro de vendedor en curso")

	ErrProductUnavailable = errors.New("producto no disponible")
)
