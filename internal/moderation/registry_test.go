package moderation

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

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

func TestIsUserBannedGlobally(t *testing.T) {
	tests := []struct {
		name     string
		count    int64
		expected bool
	}{
		{"banned", 1, true},
		{"not banned", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectQuery("SELECT count").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			banned, err := IsUserBannedGlobally("user-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, banned)
		})
	}
}

func TestIsUserBannedForBlog(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	banned, err := IsUserBannedForBlog("blog-1", "user-1")

	assert.NoError(t, err)
	assert.True(t, banned)
}

func TestBanUserUpserts(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO \"user_bans\"").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := BanUser("user-1", true, "spam")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBanUserForBlogUpserts(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO \"blog_bans\"").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ban-1"))
	mock.ExpectCommit()

	err := BanUserForBlog("blog-1", "user-1", true, "off topic")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBanBlogUpdatesFlag(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE \"blogs\"").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := BanBlog("blog-1", true)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBannedBlogIDs(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("blog-1").AddRow("blog-2"))

	ids, err := BannedBlogIDs()

	assert.NoError(t, err)
	assert.Equal(t, []string{"blog-1", "blog-2"}, ids)
}

func TestBannedUserIDsForBlog(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("user-1"))

	ids, err := BannedUserIDsForBlog("blog-1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, ids)
}
