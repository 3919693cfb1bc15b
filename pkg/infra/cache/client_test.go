package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewClientFromRedis(db)

	mock.ExpectGet("chat:session:1").SetVal(`{"id":"1"}`)
	value, err := c.Get(context.Background(), "chat:session:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, value)

	mock.ExpectGet("chat:session:2").RedisNil()
	_, err = c.Get(context.Background(), "chat:session:2")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectGet("chat:session:3").SetErr(errors.New("connection reset"))
	_, err = c.Get(context.Background(), "chat:session:3")
	assert.EqualError(t, err, "connection reset")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_SetAndDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewClientFromRedis(db)

	mock.ExpectSet("k", "v", time.Hour).SetVal("OK")
	mock.ExpectDel("k").SetVal(1)

	assert.NoError(t, c.Set(context.Background(), "k", "v", time.Hour))
	assert.NoError(t, c.Delete(context.Background(), "k"))
	assert.Same(t, db, c.RedisClient())
	assert.NoError(t, mock.ExpectationsWereMet())
}
