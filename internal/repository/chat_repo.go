package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"voicebot-backend/internal/models"
)

type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

func (r *ChatRepo) Insert(ctx context.Context, turn *models.ChatTurn) error {
	query := `
		INSERT INTO chat_history (id, user_id, user_message, bot_response, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	turn.ID = uuid.New()

	_, err := r.pool.Exec(ctx, query,
		turn.ID, turn.UserID, turn.UserMessage, turn.BotResponse, turn.CreatedAt,
	)
	return err
}

func (r *ChatRepo) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatTurn, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, user_message, bot_response, created_at
		 FROM chat_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := make([]models.ChatTurn, 0)
	for rows.Next() {
		var turn models.ChatTurn
		if err := rows.Scan(
			&turn.ID, &turn.UserID, &turn.UserMessage, &turn.BotResponse, &turn.CreatedAt,
		); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}

	return turns, rows.Err()
}

func (r *ChatRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM chat_history WHERE user_id = $1", userID,
	).Scan(&count)
	return count, err
}

// ListRecent returns the newest turns across all users, for the admin dump.
func (r *ChatRepo) ListRecent(ctx context.Context, limit int) ([]models.ChatTurn, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, user_message, bot_response, created_at
		 FROM chat_history
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := make([]models.ChatTurn, 0)
	for rows.Next() {
		var turn models.ChatTurn
		if err := rows.Scan(
			&turn.ID, &turn.UserID, &turn.UserMessage, &turn.BotResponse, &turn.CreatedAt,
		); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}

	return turns, rows.Err()
}
