package repository

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/database"

	"github.com/google/uuid"
)

var ErrQuestionNotFound = errors.New("question not found")

const (
	QuestionKindText    = "text"
	QuestionKindNumeric = "numeric"
)

type Question struct {
	ID       uuid.UUID
	JobID    uuid.UUID
	Prompt   string
	Kind     string
	Required bool
	MinValue *float64
	MaxValue *float64
}

type Answer struct {
	ID            uuid.UUID
	QuestionID    uuid.UUID
	ApplicationID uuid.UUID
	TextValue     *string
	NumericValue  *float64
	CreatedAt     time.Time
}

type QuestionRepository interface {
	ReplaceForJob(ctx context.Context, jobID uuid.UUID, questions []Question) error
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Question, error)
	CreateAnswers(ctx context.Context, answers []Answer) error
	ListAnswersByApplication(ctx context.Context, applicationID uuid.UUID) ([]Answer, error)
}

type PostgresQuestionRepository struct {
	db database.DB
}

func NewPostgresQuestionRepository(db database.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

func (r *PostgresQuestionRepository) ReplaceForJob(ctx context.Context, jobID uuid.UUID, questions []Question) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE job_id = $1`, jobID); err != nil {
			return err
		}

		for i, q := range questions {
			id := q.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO questions (id, job_id, prompt, kind, required, min_value, max_value, position)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				id, jobID, q.Prompt, q.Kind, q.Required, q.MinValue, q.MaxValue, i,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresQuestionRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_id, prompt, kind, required, min_value, max_value
		 FROM questions WHERE job_id = $1 ORDER BY position ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Question, 0)
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.JobID, &q.Prompt, &q.Kind, &q.Required, &q.MinValue, &q.MaxValue); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresQuestionRepository) CreateAnswers(ctx context.Context, answers []Answer) error {
	return database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		for _, a := range answers {
			id := a.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO answers (id, question_id, application_id, text_value, numeric_value)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (question_id, application_id)
				 DO UPDATE SET text_value = EXCLUDED.text_value, numeric_value = EXCLUDED.numeric_value`,
				id, a.QuestionID, a.ApplicationID, a.TextValue, a.NumericValue,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresQuestionRepository) ListAnswersByApplication(ctx context.Context, applicationID uuid.UUID) ([]Answer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.question_id, a.application_id, a.text_value, a.numeric_value, a.created_at
		 FROM answers a
		 JOIN questions q ON q.id = a.question_id
		 WHERE a.application_id = $1
		 ORDER BY q.position ASC`,
		applicationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Answer, 0)
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.ApplicationID, &a.TextValue, &a.NumericValue, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
