package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/pkg/config"
)

func TestPoolConfigFor_DSNDesdeCampos(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{
		Host: "localhost", Port: 5433, User: "ledger", Password: "p@ss:word", DBName: "stock", SSLMode: "disable",
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.Equal(t, int32(defaultMaxConns), pc.MaxConns)
}

func TestPoolConfigFor_DatabaseURLTienePrioridad(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{
		DatabaseURL: "postgres://u:p@db.internal:6543/ledger?sslmode=disable",
		Host:        "ignorado", Port: 5432,
		MaxConns: 8, MinConns: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.Equal(t, "ledger", pc.ConnConfig.Database)
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
}

func TestPoolConfigFor_DSNInvalido(t *testing.T) {
	_, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
