package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ddubrovin/lunchboard/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type EventRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewEventRepo(db *dbpg.DB) *EventRepository {
	return &EventRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO events (id, type, company_name, description, link, image_url,
				creator_phone_number, creator_id, deadline, is_open, deadline_notified, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = tx.ExecContext(
		ctx, query,
		e.ID, e.Type, e.CompanyName, e.Description, e.Link, e.ImageURL,
		e.CreatorPhoneNumber, e.CreatorID, e.Deadline, e.IsOpen, e.DeadlineNotified,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	if err = insertChildren(ctx, tx, e); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT id, type, company_name, description, link, image_url,
					 creator_phone_number, creator_id, deadline, is_open, deadline_notified,
					 created_at, updated_at
			  FROM events
			  WHERE id=$1`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	e, err := scanEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}

	if err = r.loadChildren(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT id, type, company_name, description, link, image_url,
					 creator_phone_number, creator_id, deadline, is_open, deadline_notified,
					 created_at, updated_at
			  FROM events
			  ORDER BY created_at DESC, id`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var res []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		res = append(res, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range res {
		if err = r.loadChildren(ctx, e); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// Update replaces the event row and all of its line items, options and votes
// in one transaction. Full replace keeps the repository contract simple: the
// services always write back a whole event.
func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE events
			  SET company_name=$2, description=$3, link=$4, image_url=$5,
				  creator_phone_number=$6, deadline=$7, is_open=$8, deadline_notified=$9, updated_at=$10
			  WHERE id=$1`
	result, err := tx.ExecContext(
		ctx, query,
		e.ID, e.CompanyName, e.Description, e.Link, e.ImageURL,
		e.CreatorPhoneNumber, e.Deadline, e.IsOpen, e.DeadlineNotified, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrEventNotFound
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE event_id=$1`, e.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM voting_options WHERE event_id=$1`, e.ID); err != nil {
		return fmt.Errorf("delete voting options: %w", err)
	}

	if err = insertChildren(ctx, tx, e); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecWithRetry(ctx, r.strategy, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) ListDeadlineExpired(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	query := `SELECT id, type, company_name, description, link, image_url,
					 creator_phone_number, creator_id, deadline, is_open, deadline_notified,
					 created_at, updated_at
			  FROM events
			  WHERE is_open AND NOT deadline_notified AND deadline IS NOT NULL AND deadline <= $1
			  ORDER BY id`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, now)
	if err != nil {
		return nil, fmt.Errorf("list expired events: %w", err)
	}
	defer rows.Close()

	var res []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		res = append(res, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range res {
		if err = r.loadChildren(ctx, e); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func scanEvent(scan func(dest ...any) error) (*domain.Event, error) {
	var e domain.Event
	var deadline sql.NullTime
	if err := scan(
		&e.ID, &e.Type, &e.CompanyName, &e.Description, &e.Link, &e.ImageURL,
		&e.CreatorPhoneNumber, &e.CreatorID, &deadline, &e.IsOpen, &e.DeadlineNotified,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if deadline.Valid {
		e.Deadline = &deadline.Time
	}
	return &e, nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, e *domain.Event) error {
	itemQuery := `INSERT INTO order_items (id, event_id, user_id, guest_name, name, details, price, is_paid, position, created_at)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, it := range e.Orders {
		if _, err := tx.ExecContext(
			ctx, itemQuery,
			it.ID, e.ID, it.UserID, it.GuestName, it.Name, it.Details, it.Price, it.IsPaid, i, it.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	optQuery := `INSERT INTO voting_options (id, event_id, name, link, image_url, added_by_id, position, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	voteQuery := `INSERT INTO option_votes (option_id, user_id, position)
				  VALUES ($1, $2, $3)`
	for i, opt := range e.VotingOptions {
		if _, err := tx.ExecContext(
			ctx, optQuery,
			opt.ID, e.ID, opt.Name, opt.Link, opt.ImageURL, opt.AddedByID, i, opt.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert voting option: %w", err)
		}
		for j, userID := range opt.Votes {
			if _, err := tx.ExecContext(ctx, voteQuery, opt.ID, userID, j); err != nil {
				return fmt.Errorf("insert vote: %w", err)
			}
		}
	}

	return nil
}

func (r *EventRepository) loadChildren(ctx context.Context, e *domain.Event) error {
	switch e.Type {
	case domain.EventTypeOrder:
		return r.loadOrderItems(ctx, e)
	case domain.EventTypeVoting:
		return r.loadVotingOptions(ctx, e)
	}
	return nil
}

func (r *EventRepository) loadOrderItems(ctx context.Context, e *domain.Event) error {
	query := `SELECT id, user_id, guest_name, name, details, price, is_paid, created_at
			  FROM order_items
			  WHERE event_id=$1
			  ORDER BY position`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, e.ID)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		var userID sql.NullString
		if err = rows.Scan(
			&it.ID, &userID, &it.GuestName, &it.Name, &it.Details, &it.Price, &it.IsPaid, &it.CreatedAt,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if userID.Valid {
			it.UserID = &userID.String
		}
		e.Orders = append(e.Orders, it)
	}

	return rows.Err()
}

func (r *EventRepository) loadVotingOptions(ctx context.Context, e *domain.Event) error {
	query := `SELECT id, name, link, image_url, added_by_id, created_at
			  FROM voting_options
			  WHERE event_id=$1
			  ORDER BY position`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, e.ID)
	if err != nil {
		return fmt.Errorf("list voting options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt domain.VotingOption
		if err = rows.Scan(
			&opt.ID, &opt.Name, &opt.Link, &opt.ImageURL, &opt.AddedByID, &opt.CreatedAt,
		); err != nil {
			return fmt.Errorf("scan voting option: %w", err)
		}
		e.VotingOptions = append(e.VotingOptions, opt)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	for i := range e.VotingOptions {
		opt := &e.VotingOptions[i]
		voteRows, err := r.db.QueryWithRetry(
			ctx, r.strategy,
			`SELECT user_id FROM option_votes WHERE option_id=$1 ORDER BY position`,
			opt.ID,
		)
		if err != nil {
			return fmt.Errorf("list votes: %w", err)
		}
		for voteRows.Next() {
			var userID string
			if err = voteRows.Scan(&userID); err != nil {
				voteRows.Close()
				return fmt.Errorf("scan vote: %w", err)
			}
			opt.Votes = append(opt.Votes, userID)
		}
		err = voteRows.Err()
		voteRows.Close()
		if err != nil {
			return err
		}
	}

	return nil
}
