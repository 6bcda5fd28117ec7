package repository

import "time"

// SequenceRepository entrega consecutivos diarios para numerar pedidos
// ({PREFIX}-{YYYYMMDD}-{NNNN}). El incremento debe ser atómico en el
// datastore: contar documentos del día y sumar uno duplica números bajo
// creación concurrente.
type SequenceRepository interface {
	Next(prefix string, day time.Time) (int, error)
}
