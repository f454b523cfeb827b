package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPings(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("pool-ok", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()

	conn, err := Open(context.Background(), "sqlmock", "pool-ok", Pool{MaxOpenConns: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, conn.Stats().MaxOpenConnections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPingFailure(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("pool-down", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	conn, err := Open(context.Background(), "sqlmock", "pool-down", Pool{})
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.Contains(t, err.Error(), "ping sqlmock: connection refused")
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "nope", "", Pool{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open nope")
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 7, orDefault(0, 7))
	assert.Equal(t, 7, orDefault(-1, 7))
	assert.Equal(t, 2, orDefault(2, 7))
}
