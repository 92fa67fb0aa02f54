// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/dishhub/internal/platform/database/schema"
	"github.com/taibuivan/dishhub/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on catalog.dish and catalog.dishtag.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectDish is the projection shared by FindByID and List. The tag names are
// aggregated in a correlated sub-query so a dish is always one row.
var selectDish = fmt.Sprintf(`
	SELECT
		d.%s, d.%s, d.%s, d.%s, d.%s, d.%s, d.%s,
		ARRAY(
			SELECT t.%s FROM %s t
			JOIN %s dt ON dt.%s = t.%s
			WHERE dt.%s = d.%s
			ORDER BY t.%s
		) AS tags
	FROM %s d
`,
	schema.CatalogDish.ID, schema.CatalogDish.Title, schema.CatalogDish.Anons, schema.CatalogDish.Text,
	schema.CatalogDish.Image, schema.CatalogDish.CreatedAt, schema.CatalogDish.UpdatedAt,
	schema.CatalogTag.Name, schema.CatalogTag.Table,
	schema.CatalogDishTag.Table, schema.CatalogDishTag.TagID, schema.CatalogTag.ID,
	schema.CatalogDishTag.DishID, schema.CatalogDish.ID,
	schema.CatalogTag.Name,
	schema.CatalogDish.Table,
)

func scanDish(row pgx.Row) (*Dish, error) {
	dish := &Dish{}
	err := row.Scan(
		&dish.ID, &dish.Title, &dish.Anons, &dish.Text, &dish.Image,
		&dish.CreatedAt, &dish.UpdatedAt, &dish.Tags,
	)
	if err != nil {
		return nil, err
	}
	if dish.Tags == nil {
		dish.Tags = []string{}
	}
	return dish, nil
}

// # Dish Rows

func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogDish.Table, schema.CatalogDish.ID)

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_dish_exists")
	}
	return exists, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Dish, error) {
	query := selectDish + fmt.Sprintf(`WHERE d.%s = $1`, schema.CatalogDish.ID)

	dish, err := scanDish(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_dish")
	}
	return dish, nil
}

func (repository *PostgresRepository) TitleTaken(context context.Context, title, excludeID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s::text <> $2)`,
		schema.CatalogDish.Table, schema.CatalogDish.Title, schema.CatalogDish.ID)

	var taken bool
	if err := repository.db.QueryRow(context, query, title, excludeID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "check_dish_title")
	}
	return taken, nil
}

func (repository *PostgresRepository) Create(context context.Context, dish *Dish) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.CatalogDish.Table,
		schema.CatalogDish.ID, schema.CatalogDish.Title, schema.CatalogDish.Anons,
		schema.CatalogDish.Text, schema.CatalogDish.Image,
		schema.CatalogDish.CreatedAt, schema.CatalogDish.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		dish.ID, dish.Title, dish.Anons, dish.Text, dish.Image,
	).Scan(&dish.CreatedAt, &dish.UpdatedAt)

	return dberr.Wrap(err, "create_dish")
}

/*
Update writes the supplied columns of a dish.

Description: Builds a PATCH-style statement with strings.Builder. updatedat is
always bumped, so an empty patch still touches the row and doubles as an
existence check.

Returns:
  - *Dish: the stored row (Tags left nil)
  - error: dberr.ErrNotFound, a Conflict wrapping the unique violation, or Internal
*/
func (repository *PostgresRepository) Update(context context.Context, id string, patch RowPatch) (*Dish, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.CatalogDish.Table, schema.CatalogDish.UpdatedAt))

	var args []any
	argID := 1

	set := func(column string, value *string) {
		if value == nil {
			return
		}
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, argID))
		args = append(args, *value)
		argID++
	}

	set(schema.CatalogDish.Title, patch.Title)
	set(schema.CatalogDish.Anons, patch.Anons)
	set(schema.CatalogDish.Text, patch.Text)
	set(schema.CatalogDish.Image, patch.Image)

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d RETURNING %s, %s, %s, %s, %s, %s, %s",
		schema.CatalogDish.ID, argID,
		schema.CatalogDish.ID, schema.CatalogDish.Title, schema.CatalogDish.Anons, schema.CatalogDish.Text,
		schema.CatalogDish.Image, schema.CatalogDish.CreatedAt, schema.CatalogDish.UpdatedAt,
	))
	args = append(args, id)

	dish := &Dish{}
	err := repository.db.QueryRow(context, queryBuilder.String(), args...).Scan(
		&dish.ID, &dish.Title, &dish.Anons, &dish.Text, &dish.Image, &dish.CreatedAt, &dish.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_dish")
	}
	return dish, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogDish.Table, schema.CatalogDish.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_dish")
	}
	return tag.RowsAffected() > 0, nil
}

/*
List returns dishes in creation order.

Description: The tag filter is an EXISTS over the join, so a dish matching
through several tags still appears once and keeps all of its tags in the
projection. strpos keeps the match a literal substring (no LIKE wildcards).
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Dish, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectDish)

	var args []any
	if filter.Tag != nil {
		queryBuilder.WriteString(fmt.Sprintf(`
			WHERE EXISTS (
				SELECT 1 FROM %s dt
				JOIN %s t ON t.%s = dt.%s
				WHERE dt.%s = d.%s AND strpos(t.%s, $1) > 0
			)
		`,
			schema.CatalogDishTag.Table,
			schema.CatalogTag.Table, schema.CatalogTag.ID, schema.CatalogDishTag.TagID,
			schema.CatalogDishTag.DishID, schema.CatalogDish.ID, schema.CatalogTag.Name,
		))
		args = append(args, *filter.Tag)
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY d.%s ASC, d.%s ASC", schema.CatalogDish.CreatedAt, schema.CatalogDish.ID))

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_dishes")
	}
	defer rows.Close()

	dishes := make([]*Dish, 0)
	for rows.Next() {
		dish, err := scanDish(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_dish")
		}
		dishes = append(dishes, dish)
	}

	return dishes, dberr.Wrap(rows.Err(), "list_dishes")
}

// # Tag Associations

func (repository *PostgresRepository) CurrentTags(context context.Context, dishID string) (map[string]string, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s FROM %s t
		JOIN %s dt ON dt.%s = t.%s
		WHERE dt.%s = $1
	`,
		schema.CatalogTag.Name, schema.CatalogTag.ID, schema.CatalogTag.Table,
		schema.CatalogDishTag.Table, schema.CatalogDishTag.TagID, schema.CatalogTag.ID,
		schema.CatalogDishTag.DishID,
	)

	rows, err := repository.db.Query(context, query, dishID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_dish_tags")
	}
	defer rows.Close()

	current := make(map[string]string)
	for rows.Next() {
		var name, id string
		if err := rows.Scan(&name, &id); err != nil {
			return nil, dberr.Wrap(err, "scan_dish_tag")
		}
		current[name] = id
	}

	return current, dberr.Wrap(rows.Err(), "list_dish_tags")
}

// AddTags queues one insert per tag in a single batch round trip.
func (repository *PostgresRepository) AddTags(context context.Context, dishID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CatalogDishTag.Table, schema.CatalogDishTag.DishID, schema.CatalogDishTag.TagID)

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(query, dishID, tagID)
	}

	if err := repository.db.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "link_dish_tags")
	}
	return nil
}

func (repository *PostgresRepository) RemoveTags(context context.Context, dishID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = ANY($2::uuid[])`,
		schema.CatalogDishTag.Table, schema.CatalogDishTag.DishID, schema.CatalogDishTag.TagID)

	if _, err := repository.db.Exec(context, query, dishID, tagIDs); err != nil {
		return dberr.Wrap(err, "unlink_dish_tags")
	}
	return nil
}
