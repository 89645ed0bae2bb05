package migrations

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/suite"
)

type MigrationsTestSuite struct {
	suite.Suite
	db *sql.DB
}

func (s *MigrationsTestSuite) SetupTest() {
	db, err := sql.Open("sqlite3", filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)
	s.db = db
}

func (s *MigrationsTestSuite) TearDownTest() {
	s.db.Close()
}

func TestMigrationsSuite(t *testing.T) {
	suite.Run(t, new(MigrationsTestSuite))
}

func (s *MigrationsTestSuite) TestDefaultSchema() {
	// Execute
	applied, err := NewMigrator(s.db, Default()).MigrateUp()

	// Assert
	s.Require().NoError(err)
	s.Equal(2, applied)

	var count int
	err = s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'resolutions'`).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *MigrationsTestSuite) TestMigrateUpIsIdempotent() {
	// Setup
	migrator := NewMigrator(s.db, Default())
	_, err := migrator.MigrateUp()
	s.Require().NoError(err)

	// Execute
	applied, err := migrator.MigrateUp()

	// Assert
	s.Require().NoError(err)
	s.Zero(applied)

	versions, err := migrator.GetAppliedMigrations()
	s.Require().NoError(err)
	s.Equal(map[string]bool{"001": true, "002": true}, versions)
}

func (s *MigrationsTestSuite) TestLoadMigrationsOrdersByVersion() {
	// Setup
	source := fstest.MapFS{
		"002_second_step.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"001_first.sql":       {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"README.md":           {Data: []byte("ignored")},
	}

	// Execute
	migrations, err := NewMigrator(s.db, source).LoadMigrations()

	// Assert
	s.Require().NoError(err)
	s.Require().Len(migrations, 2)
	s.Equal("001", migrations[0].Version)
	s.Equal("first", migrations[0].Description)
	s.Equal("second step", migrations[1].Description)
}

func (s *MigrationsTestSuite) TestInvalidFileName() {
	// Setup
	source := fstest.MapFS{"schema.sql": {Data: []byte("SELECT 1;")}}

	// Execute
	_, err := NewMigrator(s.db, source).MigrateUp()

	// Assert
	s.ErrorContains(err, "invalid migration filename")
}

func (s *MigrationsTestSuite) TestFailedMigrationIsNotRecorded() {
	// Setup
	source := fstest.MapFS{
		"001_ok.sql":     {Data: []byte("CREATE TABLE ok (id INTEGER);")},
		"002_broken.sql": {Data: []byte("CREATE TABLE (;")},
	}
	migrator := NewMigrator(s.db, source)

	// Execute
	applied, err := migrator.MigrateUp()

	// Assert
	s.Error(err)
	s.Equal(1, applied)
	versions, err := migrator.GetAppliedMigrations()
	s.Require().NoError(err)
	s.Equal(map[string]bool{"001": true}, versions)
}

func (s *MigrationsTestSuite) TestCreateMigration() {
	// Setup
	dir := filepath.Join(s.T().TempDir(), "migrations")

	// Execute
	first, err := CreateMigration(dir, "add players")
	s.Require().NoError(err)
	second, err := CreateMigration(dir, "drop players")
	s.Require().NoError(err)

	// Assert
	s.Equal("001_add_players.sql", filepath.Base(first))
	s.Equal("002_drop_players.sql", filepath.Base(second))

	content, err := os.ReadFile(first)
	s.Require().NoError(err)
	s.Contains(string(content), "-- Migration: add players")
}
