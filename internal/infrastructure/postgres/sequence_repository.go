package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implementación del puerto SequenceRepository sobre PostgreSQL.
// Un upsert atómico por (prefijo, día): dos creaciones concurrentes nunca
// reciben el mismo consecutivo.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next entrega el siguiente consecutivo del día para el prefijo dado.
func (r *SequenceRepo) Next(prefix string, day time.Time) (int, error) {
	var value int
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO order_sequences (prefix, day, value)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (prefix, day) DO UPDATE SET value = order_sequences.value + 1
		 RETURNING value`,
		prefix, day.Format("2006-01-02"),
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return value, nil
}
