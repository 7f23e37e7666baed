// Package integrationtest wires a real database and server for tests built with the integration tag.
package integrationtest

import (
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/lockpkg"
)

const configPath = "../../configs"

// ledgerTables lists every table written by the application.
const ledgerTables = "loans, mandates, recipients, entries, accounts"

// SetupServer returns a server over a database that is emptied when the test ends.
//
// Ticks are guarded by an in-process lease, so no redis is needed.
func SetupServer(t *testing.T) *httpserver.Server {
	t.Helper()

	config, err := configpkg.Load(configPath)
	if err != nil {
		t.Fatalf("configpkg.Load(%q) returned error: %v", configPath, err)
	}

	zerolog.SetGlobalLevel(zerolog.FatalLevel)
	gin.SetMode(gin.TestMode)

	// Scheduled runs would race the ticks triggered by tests.
	config.ProcessorRunOnStart = false

	db := SetupDB(t, config.DBDriver, config.DBSource)

	server, err := httpserver.New(db, lockpkg.NewLocalLocker(), middleware.GetLogger(config), config)
	if err != nil {
		t.Fatalf("httpserver.New returned error: %v", err)
	}

	return server
}

// SetupDB connects to the test database and empties the ledger tables on cleanup.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("dbpkg.Setup(%q) returned error: %v", driver, err)
	}

	t.Cleanup(func() {
		if _, err := db.Exec("TRUNCATE TABLE " + ledgerTables + " RESTART IDENTITY CASCADE"); err != nil {
			t.Errorf("truncate %s: %v", ledgerTables, err)
		}

		if err := db.Close(); err != nil {
			t.Errorf("db.Close() returned error: %v", err)
		}
	})

	return db
}
