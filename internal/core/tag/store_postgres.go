package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/dishhub/internal/platform/database/schema"
	"github.com/taibuivan/dishhub/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogTag.ID, schema.CatalogTag.Name, schema.CatalogTag.CreatedAt,
		schema.CatalogTag.Table, schema.CatalogTag.Name)

	t := &Tag{}
	err := repository.db.QueryRow(context, query, name).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_tag_by_name")
	}
	return t, nil
}

func (repository *PostgresRepository) Create(context context.Context, tag *Tag) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s) DO NOTHING
		RETURNING %s
	`,
		schema.CatalogTag.Table, schema.CatalogTag.ID, schema.CatalogTag.Name,
		schema.CatalogTag.Name,
		schema.CatalogTag.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, tag.ID, tag.Name).Scan(&tag.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dberr.Wrap(err, "create_tag")
	}
	return true, nil
}

func (repository *PostgresRepository) List(context context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogTag.ID, schema.CatalogTag.Name, schema.CatalogTag.CreatedAt,
		schema.CatalogTag.Table, schema.CatalogTag.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, dberr.Wrap(rows.Err(), "list_tags")
}
