package repositories

import (
	"context"
	"database/sql"
)

type FCMTokenRepository struct {
	DB *sql.DB
}

func (r *FCMTokenRepository) InsertToken(ctx context.Context, userID int, token string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO notify_tokens (user_id, token) VALUES (?, ?)`,
		userID, token,
	)
	return err
}

func (r *FCMTokenRepository) GetTokensByUserID(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT token FROM notify_tokens WHERE user_id = ?`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *FCMTokenRepository) DeleteToken(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM notify_tokens WHERE token = ?`, token)
	return err
}
