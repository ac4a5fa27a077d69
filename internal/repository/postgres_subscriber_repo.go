package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hitoshi/grown/internal/model"
)

// PostgresSubscriberRepo はPostgreSQLを使用した登録者リポジトリ。
type PostgresSubscriberRepo struct {
	db *sql.DB
}

// NewPostgresSubscriberRepo はPostgresSubscriberRepoを生成する。
func NewPostgresSubscriberRepo(db *sql.DB) *PostgresSubscriberRepo {
	return &PostgresSubscriberRepo{db: db}
}

// upsertSubscriberSQL は一意制約(email)を利用したUPSERT文。
// 競合時はid、sourceを更新しないため、初回登録時の値が維持される。
const upsertSubscriberSQL = `
INSERT INTO subscribers (id, email, interests, zip, source, created_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (email) DO UPDATE SET
	interests  = EXCLUDED.interests,
	zip        = EXCLUDED.zip,
	created_at = now()
RETURNING id, email, interests, zip, source, created_at`

// Upsert はemailをキーに登録者を作成または更新する。
func (r *PostgresSubscriberRepo) Upsert(ctx context.Context, email, interests string, zip *string, source string) (*model.Subscriber, error) {
	var (
		sub    model.Subscriber
		zipVal sql.NullString
	)

	err := r.db.QueryRowContext(ctx, upsertSubscriberSQL,
		uuid.New().String(), email, interests, nullString(zip), source,
	).Scan(&sub.ID, &sub.Email, &sub.Interests, &zipVal, &sub.Source, &sub.CreatedAt)
	if err != nil {
		return nil, &StoreError{Op: "upsert", Err: fmt.Errorf("failed to upsert subscriber: %w", err)}
	}

	sub.Zip = stringPtr(zipVal)
	return &sub, nil
}

// ListAll は全登録者をcreated_atの降順で返す。
// 同時刻のレコードはidで並べて順序を安定させる。
func (r *PostgresSubscriberRepo) ListAll(ctx context.Context) ([]*model.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, interests, zip, source, created_at
		 FROM subscribers
		 ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: fmt.Errorf("failed to query subscribers: %w", err)}
	}
	defer rows.Close()

	var subs []*model.Subscriber
	for rows.Next() {
		var (
			sub    model.Subscriber
			zipVal sql.NullString
		)
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Interests, &zipVal, &sub.Source, &sub.CreatedAt); err != nil {
			return nil, &StoreError{Op: "list", Err: fmt.Errorf("failed to scan subscriber: %w", err)}
		}
		sub.Zip = stringPtr(zipVal)
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list", Err: fmt.Errorf("failed to iterate subscribers: %w", err)}
	}

	return subs, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// compile-time interface check
var _ SubscriberRepository = (*PostgresSubscriberRepo)(nil)
