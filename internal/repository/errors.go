package repository

import "errors"

var (
	// ErrNotFound means no matching row. Callers treat it as "does not exist
	// yet", never as a storage failure.
	ErrNotFound = errors.New("registro não encontrado")

	// ErrConflict means a conditional update lost the race: the row changed
	// since it was read. The caller reloads and retries the operation.
	ErrConflict = errors.New("conflito de versão na atualização")

	// ErrDuplicateProtocol means the UNIQUE constraint on the protocol
	// column rejected the insert. The caller regenerates and retries.
	ErrDuplicateProtocol = errors.New("protocolo já existente")
)
