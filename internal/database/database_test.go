//go:build integration
// +build integration

package database_test

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"testing"

	"grievance-portal-backend/internal/database"
	"grievance-portal-backend/internal/database/models"
	"grievance-portal-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before all database tests and ensures proper Docker cleanup
func TestMain(m *testing.M) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Database tests interrupted, cleaning up Docker containers...")
		testutils.CleanupSharedContainer()
		os.Exit(1)
	}()

	log.Println("🧪 Starting database integration tests...")
	code := m.Run()

	log.Println("✅ Database tests completed, cleaning up Docker containers...")
	testutils.CleanupSharedContainer()

	os.Exit(code)
}

// TestSkipAutoMigrate tests that migration can be disabled
func TestSkipAutoMigrate(t *testing.T) {
	base := testutils.SetupTestSuite(t)
	defer base.TeardownTestSuite()

	migrator := base.DB.Migrator()
	require.NoError(t, migrator.DropTable(&models.Attachment{}))
	require.False(t, migrator.HasTable(&models.Attachment{}))

	skipped, err := database.Initialize(base.Config.DatabaseURL, &database.Options{SkipAutoMigrate: true})
	require.NoError(t, err)
	assert.False(t, skipped.Migrator().HasTable(&models.Attachment{}))

	// Default options recreate the schema
	migrated, err := database.Initialize(base.Config.DatabaseURL, nil)
	require.NoError(t, err)
	assert.True(t, migrated.Migrator().HasTable(&models.Attachment{}))
}
