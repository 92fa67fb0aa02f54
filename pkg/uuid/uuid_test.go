// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dishhub/pkg/uuid"
)

func TestNew_IsValidAndOrdered(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first[:8], second[:8])
}

func TestValid(t *testing.T) {
	assert.True(t, uuid.Valid("01890a5d-ac96-774b-bcce-b302099a8057"))
	assert.False(t, uuid.Valid("not-a-uuid"))
	assert.False(t, uuid.Valid("{01890a5d-ac96-774b-bcce-b302099a8057}"))
	assert.False(t, uuid.Valid(""))
}
