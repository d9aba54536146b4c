package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSaveAndLoad(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), time.Hour)
	ctx := context.Background()

	user := map[string]string{"id": "user_1", "email": "dean@example.edu"}
	require.NoError(t, mgr.Save(ctx, "user_1", "access-abc", "refresh-xyz", user))

	sess, err := mgr.Load(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "access-abc", sess.AccessToken)
	assert.Equal(t, "refresh-xyz", sess.RefreshToken)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(sess.UserJSON), &decoded))
	assert.Equal(t, "dean@example.edu", decoded["email"])
}

func TestManagerLoadAbsentSession(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), time.Hour)

	sess, err := mgr.Load(context.Background(), "user_missing")
	require.NoError(t, err)
	assert.Empty(t, sess.AccessToken)
	assert.Empty(t, sess.RefreshToken)
	assert.Empty(t, sess.UserJSON)
}

func TestManagerClear(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), time.Hour)
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "user_1", "a", "r", map[string]string{"id": "user_1"}))
	require.NoError(t, mgr.Clear(ctx, "user_1"))

	sess, err := mgr.Load(ctx, "user_1")
	require.NoError(t, err)
	assert.Empty(t, sess.AccessToken)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", -time.Second))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, value)
}
