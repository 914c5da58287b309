package repository

import "errors"

var (
	// ErrNotFound indica que no existe un documento con ese id o slug.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID se devuelve cuando el id no es un ObjectID válido.
	ErrInvalidID = errors.New("invalid id")

	// ErrDuplicateSlug se devuelve cuando un slug explícito ya está en uso.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrEmailExists se devuelve cuando el índice único de email rechaza el insert.
	ErrEmailExists = errors.New("email already exists")
)
