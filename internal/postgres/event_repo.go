package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cwrk-planet/conference-service/internal/domain"
)

// EventRepository — каталог мероприятий. Конференц-состояние в БД не пишем,
// здесь только справочные метаданные события.
type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Get(ctx context.Context, id string) (*domain.Event, error) {
	var ev domain.Event
	query := `SELECT id, title, organizer, created_at FROM events WHERE id=$1`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&ev.ID, &ev.Title, &ev.Organizer, &ev.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}
