package storage

import (
	"fmt"
	"time"

	"github.com/user/eventseeder/internal/event"
)

// EventStore handles events-table operations.
type EventStore struct {
	db *Database
}

// NewEventStore creates a new event store.
func NewEventStore(db *Database) *EventStore {
	return &EventStore{db: db}
}

// eventRow mirrors the events table columns.
type eventRow struct {
	ID        string    `db:"id"`
	Type      string    `db:"type"`
	Owner     string    `db:"owner"`
	OwnerType string    `db:"owner_type"`
	Repo      string    `db:"repo"`
	Member    string    `db:"member"`
	Timestamp time.Time `db:"timestamp"`
	Data      string    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
}

// SaveEvents inserts a generated batch in a single transaction. INSERT OR
// REPLACE keeps re-seeding idempotent on event ID.
func (s *EventStore) SaveEvents(events []event.Event) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Preparex(`
		INSERT OR REPLACE INTO events (id, type, owner, owner_type, repo, member, timestamp, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		data, err := event.EncodePayload(e.Payload)
		if err != nil {
			return err
		}
		_, err = stmt.Exec(e.ID, string(e.Type), e.Owner, string(e.OwnerType),
			e.Repo, e.Member, e.Timestamp, data, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert event %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// CountEvents returns the number of stored events.
func (s *EventStore) CountEvents() (int, error) {
	var count int
	err := s.db.Get(&count, `SELECT COUNT(*) FROM events`)
	return count, err
}

// GetEventsByOwner returns all stored events for an owner, ordered by
// timestamp.
func (s *EventStore) GetEventsByOwner(owner string) ([]event.Event, error) {
	var rows []eventRow
	query := `
		SELECT id, type, owner, owner_type, repo, member, timestamp, data, created_at
		FROM events WHERE owner = ? ORDER BY timestamp
	`
	if err := s.db.Select(&rows, query, owner); err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(rows))
	for _, r := range rows {
		payload, err := event.DecodePayload(event.Type(r.Type), []byte(r.Data))
		if err != nil {
			return nil, fmt.Errorf("stored event %s: %w", r.ID, err)
		}
		events = append(events, event.Event{
			ID:        r.ID,
			Type:      event.Type(r.Type),
			Owner:     r.Owner,
			OwnerType: event.OwnerType(r.OwnerType),
			Repo:      r.Repo,
			Member:    r.Member,
			Timestamp: r.Timestamp,
			Payload:   payload,
			CreatedAt: r.CreatedAt,
		})
	}
	return events, nil
}
