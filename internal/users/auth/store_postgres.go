// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/dishhub/internal/platform/database/schema"
	"github.com/taibuivan/dishhub/internal/platform/dberr"
)

// # Account Repository

// PostgresAccountRepository implements [AccountRepository] on users.account.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of [AccountRepository].
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

var selectAccount = fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s`,
	schema.UserAccount.ID, schema.UserAccount.Login, schema.UserAccount.Password,
	schema.UserAccount.Role, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	schema.UserAccount.Table,
)

func (repository *PostgresAccountRepository) findBy(context context.Context, column, value, action string) (*Account, error) {
	query := selectAccount + fmt.Sprintf(` WHERE %s = $1`, column)

	account := &Account{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&account.ID,
		&account.Login,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return account, nil
}

func (repository *PostgresAccountRepository) FindByLogin(context context.Context, login string) (*Account, error) {
	return repository.findBy(context, schema.UserAccount.Login, login, "find_account_by_login")
}

func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	return repository.findBy(context, schema.UserAccount.ID, id, "find_account")
}

/*
Create persists a new account.

Returns:
  - error: a Conflict wrapping the unique violation when the login is taken
*/
func (repository *PostgresAccountRepository) Create(context context.Context, account *Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Login, schema.UserAccount.Password, schema.UserAccount.Role,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		account.ID, account.Login, account.PasswordHash, account.Role,
	).Scan(&account.CreatedAt, &account.UpdatedAt)

	return dberr.Wrap(err, "create_account")
}
