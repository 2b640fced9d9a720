package main

import (
	"testing"

	"sklad-backend/store"
	"sklad-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedDefaultsNormalizesAdminEmail(t *testing.T) {
	// Email из окружения в смешанном регистре и с пробелами
	t.Setenv("DEFAULT_ADMIN_EMAIL", "  Admin@Sklad.Local ")
	t.Setenv("DEFAULT_ADMIN_PASSWORD", "secret123")

	st := store.NewMemoryStore()
	seedDefaults(st, zap.NewNop())

	// Вход ищет администратора по нормализованному email
	admin, err := st.GetAdmin("admin@sklad.local")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "admin@sklad.local", admin.Email)
	assert.True(t, utils.CheckPassword("secret123", admin.PasswordHash))

	settings, err := st.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "admin@sklad.local", settings.AdminEmail)
}
