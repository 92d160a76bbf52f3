package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/founderhub/founder-api/internal/model"
	"github.com/founderhub/founder-api/internal/repository"
)

func (r *pitchRepository) CreatePitchDeck(ctx context.Context, deck *model.PitchDeck) error {
	query := `
		INSERT INTO pitch_decks (
			founder_id, title, description, file_url, file_name, file_size,
			file_type, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	deck.Status = "processing"
	deck.CreatedAt = time.Now()
	deck.UpdatedAt = deck.CreatedAt

	err := r.db.QueryRowxContext(ctx, query,
		deck.FounderID,
		deck.Title,
		deck.Description,
		deck.FileURL,
		deck.FileName,
		deck.FileSize,
		deck.FileType,
		deck.Status,
		deck.CreatedAt,
		deck.UpdatedAt,
	).Scan(&deck.ID)
	if err != nil {
		return fmt.Errorf("failed to create pitch deck: %w", err)
	}
	return nil
}

func (r *pitchRepository) GetPitchDeck(ctx context.Context, id int64) (*model.PitchDeck, error) {
	query := `
		SELECT id, founder_id, title, description, file_url, file_name, file_size,
			   file_type, status, view_count, like_count, comment_count,
			   created_at, updated_at
		FROM pitch_decks
		WHERE id = $1
	`
	var deck model.PitchDeck
	err := r.db.GetContext(ctx, &deck, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pitch deck: %w", err)
	}
	return &deck, nil
}

func (r *pitchRepository) UpdateFileURL(ctx context.Context, id int64, fileURL string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE pitch_decks SET file_url = $1, updated_at = NOW() WHERE id = $2`,
		fileURL, id)
	if err != nil {
		return fmt.Errorf("failed to update file url: %w", err)
	}
	return nil
}

func (r *pitchRepository) IncrementDeckViewCount(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE pitch_decks SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

func (r *pitchRepository) ListPitchDecks(ctx context.Context, filters *model.PitchDeckFilters, limit, offset int) ([]*model.PitchDeckSummary, int64, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argCount := 1

	if filters.FounderID != 0 {
		where += fmt.Sprintf(" AND pd.founder_id = $%d", argCount)
		args = append(args, filters.FounderID)
		argCount++
	}
	if filters.Status != "" {
		where += fmt.Sprintf(" AND pd.status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM pitch_decks pd " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count pitch decks: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT
			pd.id, pd.founder_id, pd.title, pd.description, pd.file_name,
			pd.file_type, pd.status, pd.view_count, pd.like_count,
			pd.comment_count, pd.created_at,
			COALESCE(slide_counts.slide_count, 0) AS slide_count
		FROM pitch_decks pd
		LEFT JOIN (
			SELECT pitch_deck_id, COUNT(*) AS slide_count
			FROM pitch_slides
			GROUP BY pitch_deck_id
		) slide_counts ON pd.id = slide_counts.pitch_deck_id
		%s
		ORDER BY pd.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argCount, argCount+1)
	args = append(args, limit, offset)

	var decks []*model.PitchDeckSummary
	if err := r.db.SelectContext(ctx, &decks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list pitch decks: %w", err)
	}
	return decks, total, nil
}
