package service

import (
	"testing"

	"github.com/dsouzac/quotify-api/internal/domain/entity"
	infrarepo "github.com/dsouzac/quotify-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWritesEntryBeforeReturning(t *testing.T) {
	env := newTestEnv(t)
	audit := NewAuditService(infrarepo.NewAuditRepository(env.db))

	audit.Record(env.user.ID, "Created quote")

	// the entry must be visible as soon as Record returns
	var entries []entity.AuditLog
	require.NoError(t, env.db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, env.user.ID, entries[0].UserID)
	assert.Equal(t, "Created quote", entries[0].Action)
}

func TestRecordSwallowsWriteFailure(t *testing.T) {
	env := newTestEnv(t)
	audit := NewAuditService(infrarepo.NewAuditRepository(env.db))

	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// a failed write is discarded, never panics or surfaces
	assert.NotPanics(t, func() {
		audit.Record(env.user.ID, "Created quote")
	})
}
