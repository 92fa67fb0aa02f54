// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/dishhub/internal/platform/database/schema"
	"github.com/taibuivan/dishhub/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on catalog.comment.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.CatalogComment.Table,
		schema.CatalogComment.ID, schema.CatalogComment.DishID, schema.CatalogComment.Author, schema.CatalogComment.Body,
		schema.CatalogComment.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		comment.ID, comment.DishID, comment.Author, comment.Body,
	).Scan(&comment.CreatedAt)

	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) FindByID(context context.Context, dishID, commentID string) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.CatalogComment.ID, schema.CatalogComment.DishID, schema.CatalogComment.Author,
		schema.CatalogComment.Body, schema.CatalogComment.CreatedAt,
		schema.CatalogComment.Table,
		schema.CatalogComment.DishID, schema.CatalogComment.ID,
	)

	comment := &Comment{}
	err := repository.db.QueryRow(context, query, dishID, commentID).Scan(
		&comment.ID, &comment.DishID, &comment.Author, &comment.Body, &comment.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_comment")
	}
	return comment, nil
}

func (repository *PostgresRepository) ListByDish(context context.Context, dishID string) ([]*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC
	`,
		schema.CatalogComment.ID, schema.CatalogComment.DishID, schema.CatalogComment.Author,
		schema.CatalogComment.Body, schema.CatalogComment.CreatedAt,
		schema.CatalogComment.Table,
		schema.CatalogComment.DishID,
		schema.CatalogComment.CreatedAt, schema.CatalogComment.ID,
	)

	rows, err := repository.db.Query(context, query, dishID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(&comment.ID, &comment.DishID, &comment.Author, &comment.Body, &comment.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, dberr.Wrap(rows.Err(), "list_comments")
}

func (repository *PostgresRepository) Delete(context context.Context, dishID, commentID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CatalogComment.Table, schema.CatalogComment.DishID, schema.CatalogComment.ID)

	tag, err := repository.db.Exec(context, query, dishID, commentID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_comment")
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) DeleteByDish(context context.Context, dishID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogComment.Table, schema.CatalogComment.DishID)

	tag, err := repository.db.Exec(context, query, dishID)
	if err != nil {
		return 0, dberr.Wrap(err, "purge_comments")
	}
	return tag.RowsAffected(), nil
}
