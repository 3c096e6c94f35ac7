package guard

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/apperror"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = originalDB })

	return mock
}

func TestRequireBlogOwnerAllowsOwner(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("user-1"))

	err := RequireBlogOwner("blog-1", "user-1")

	assert.NoError(t, err)
}

func TestRequireBlogOwnerRejectsIntruder(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("user-1"))

	err := RequireBlogOwner("blog-1", "user-2")

	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestRequireBlogOwnerMissingBlogIsNotFound(t *testing.T) {
	// A missing blog must read as NotFound, never Forbidden, even for
	// a non-owner.
	mock := setupMockDB(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := RequireBlogOwner("missing", "user-2")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRequireNotBanned(t *testing.T) {
	tests := []struct {
		name        string
		globalCount int64
		blogID      string
		blogCount   int64
		expectedErr error
	}{
		{"clean user", 0, "", 0, nil},
		{"globally banned", 1, "", 0, apperror.ErrForbidden},
		{"clean in blog scope", 0, "blog-1", 0, nil},
		{"banned for the blog", 0, "blog-1", 1, apperror.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)

			mock.ExpectQuery("SELECT count").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.globalCount))
			if tt.globalCount == 0 && tt.blogID != "" {
				mock.ExpectQuery("SELECT count").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.blogCount))
			}

			err := RequireNotBanned("user-1", tt.blogID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
