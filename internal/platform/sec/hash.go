// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored account passwords.
const PasswordCost = bcrypt.DefaultCost

// ErrPasswordTooLong is returned for passwords bcrypt would silently truncate.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// decoyHash is compared against when a login names no account, so an unknown
// login costs the same time as a wrong password.
var decoyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("dishhub-decoy-password"), PasswordCost)
	if err != nil {
		panic("sec: decoy hash: " + err.Error())
	}
	return hash
})

// HashPassword returns the bcrypt hash of a plain-text password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("sec: hash password: %w", err)
	}
	return string(hash), nil
}

// PasswordMatches reports whether plain matches storedHash. An empty
// storedHash (unknown account) is checked against a decoy and never matches.
func PasswordMatches(plain, storedHash string) bool {
	if storedHash == "" {
		_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(plain))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain)) == nil
}
