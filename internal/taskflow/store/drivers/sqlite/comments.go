package sqlite

import (
	"context"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite/gen"
)

type commentsRepo struct {
	q *gen.Queries
}

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	return r.q.CreateComment(ctx, gen.CreateCommentParams{
		ID:        c.ID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		CreatedAt: toMillis(c.CreatedAt),
		UpdatedAt: toMillis(c.UpdatedAt),
	})
}

func (r *commentsRepo) GetComment(ctx context.Context, taskID, commentID string) (domain.Comment, error) {
	row, err := r.q.GetComment(ctx, gen.GetCommentParams{ID: commentID, TaskID: taskID})
	if err != nil {
		return domain.Comment{}, mapNotFound(err)
	}
	return mapComment(row), nil
}

func (r *commentsRepo) UpdateText(ctx context.Context, commentID, text string) error {
	return mapAffected(r.q.UpdateCommentText(ctx, gen.UpdateCommentTextParams{
		Text:      text,
		UpdatedAt: nowMillis(),
		ID:        commentID,
	}))
}

func (r *commentsRepo) DeleteComment(ctx context.Context, commentID string) error {
	return mapAffected(r.q.DeleteComment(ctx, commentID))
}

func (r *commentsRepo) ListForTask(ctx context.Context, taskID string) ([]domain.CommentDetails, error) {
	rows, err := r.q.ListTaskComments(ctx, taskID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CommentDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CommentDetails{
			Comment: domain.Comment{
				ID:        row.ID,
				TaskID:    row.TaskID,
				AuthorID:  row.AuthorID,
				Text:      row.Text,
				CreatedAt: fromMillis(row.CreatedAt),
				UpdatedAt: fromMillis(row.UpdatedAt),
			},
			Author: domain.UserSummary{ID: row.AuthorID, Name: row.AuthorName, Email: row.AuthorEmail},
		})
	}
	return out, nil
}
