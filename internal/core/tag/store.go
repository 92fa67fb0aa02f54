package tag

import "context"

type Repository interface {
	// FindByName returns dberr.ErrNotFound when no tag has the name.
	FindByName(context context.Context, name string) (*Tag, error)

	// Create inserts the tag unless the name is taken. created is false when
	// another writer got there first.
	Create(context context.Context, tag *Tag) (created bool, err error)

	List(context context.Context) ([]*Tag, error)
}
