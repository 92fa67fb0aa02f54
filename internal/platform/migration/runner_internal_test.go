// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/dishhub", "pgx5://u:p@db:5432/dishhub"},
		{"postgresql://u:p@db/dishhub", "pgx5://u:p@db/dishhub"},
		{"pgx5://u:p@db/dishhub", "pgx5://u:p@db/dishhub"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pgx5DSN(tt.in))
		})
	}
}
