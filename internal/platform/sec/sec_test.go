// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishhub/internal/platform/sec"
)

func TestTokenService_RoundTrip(t *testing.T) {
	tokens, err := sec.NewTokenService("test-secret", "dishhub.test")
	require.NoError(t, err)

	signed, claims, err := tokens.Issue("user-1", "chef", string(sec.RoleAdmin), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	parsed, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "chef", parsed.Login)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestTokenService_Rejects(t *testing.T) {
	tokens, err := sec.NewTokenService("test-secret", "dishhub.test")
	require.NoError(t, err)

	t.Run("Expired", func(t *testing.T) {
		signed, _, err := tokens.Issue("user-1", "chef", "guest", -time.Minute)
		require.NoError(t, err)

		_, err = tokens.Parse(signed)
		assert.Error(t, err)
	})

	t.Run("Other_Secret", func(t *testing.T) {
		other, err := sec.NewTokenService("other-secret", "dishhub.test")
		require.NoError(t, err)
		signed, _, err := other.Issue("user-1", "chef", "guest", time.Hour)
		require.NoError(t, err)

		_, err = tokens.Parse(signed)
		assert.Error(t, err)
	})

	t.Run("Other_Issuer", func(t *testing.T) {
		other, err := sec.NewTokenService("test-secret", "elsewhere")
		require.NoError(t, err)
		signed, _, err := other.Issue("user-1", "chef", "guest", time.Hour)
		require.NoError(t, err)

		_, err = tokens.Parse(signed)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := tokens.Parse("not-a-token")
		assert.Error(t, err)
	})
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "dishhub.test")
	assert.ErrorIs(t, err, sec.ErrEmptySecret)
}

func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("s3cret!")
	require.NoError(t, err)

	assert.True(t, sec.PasswordMatches("s3cret!", hash))
	assert.False(t, sec.PasswordMatches("wrong", hash))
	assert.False(t, sec.PasswordMatches("s3cret!", ""))

	_, err = sec.HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)
}

func TestUserRole(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleGuest))
	assert.False(t, sec.RoleGuest.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleGuest.Valid())
	assert.False(t, sec.UserRole("moderator").Valid())
	assert.False(t, sec.UserRole("moderator").AtLeast(sec.RoleGuest))
	assert.True(t, sec.RoleAdmin.IsAdmin())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    sec.UserRole
		wantErr bool
	}{
		{"admin", sec.RoleAdmin, false},
		{" Guest ", sec.RoleGuest, false},
		{"root", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			role, err := sec.ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}
