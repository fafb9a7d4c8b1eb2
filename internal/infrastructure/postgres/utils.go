package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados por el adaptador.
const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isCheckViolation la base rechazó un valor por CHECK (cantidad o reserva negativa).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeCheckViolation
}

// isRetryable conflictos de concurrencia que se resuelven reintentando la tx completa.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
}

// validID evita mandar a la base un texto que no es uuid (la consulta fallaría con 22P02).
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// nullable convierte "" en NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
