package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds a migrated connection to the integration database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the embedded
// migrations. The test is skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, db.Migrate(context.Background()))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(setup.Close)

	return setup
}

// TruncateAllTables empties every table and resets identities.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"audit_logs",
		"financial_transactions",
		"salaries",
		"absence_requests",
		"time_bank",
		"time_records",
		"employee_schedules",
		"work_schedule_details",
		"work_schedules",
		"users",
	}

	_, err := s.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", ")))
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}

// CreateUser inserts an active user with the given role.
func (s *TestDatabaseSetup) CreateUser(t *testing.T, name string, role user.Role) user.User {
	t.Helper()

	created, err := postgresql.NewUserRepository(s.DB).Create(context.Background(), user.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Active:       true,
	})
	require.NoError(t, err)
	return created
}
