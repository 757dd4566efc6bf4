// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-crm-auth/models"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "session", SessionCtxKey.String())
	assert.Equal(t, "user", UserCtxKey.String())
}

func TestWithIdentity(t *testing.T) {
	session := &models.Session{ID: "token", UserID: "uid"}
	user := &models.User{ID: "uid", Username: "jane"}

	ctx := WithIdentity(context.Background(), session, user)

	gotSession, ok := GetSessionFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, session, gotSession)

	gotUser, ok := GetUserFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, user, gotUser)
}

func TestIdentity_Missing(t *testing.T) {
	ctx := context.Background()

	_, ok := GetSessionFromContext(ctx)
	assert.False(t, ok)

	_, ok = GetUserFromContext(ctx)
	assert.False(t, ok)
}

func TestIdentity_NilAndWrongType(t *testing.T) {
	ctx := WithIdentity(context.Background(), nil, nil)
	_, ok := GetUserFromContext(ctx)
	assert.False(t, ok, "typed nil must not count as authenticated")

	ctx = context.WithValue(context.Background(), UserCtxKey, "jane")
	_, ok = GetUserFromContext(ctx)
	assert.False(t, ok)
}
