package visibility

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

func dryRunSQL(t *testing.T, scope func(*gorm.DB) *gorm.DB, table string) string {
	t.Helper()

	var rows []map[string]interface{}
	stmt := database.DB.Session(&gorm.Session{DryRun: true}).
		Table(table).
		Scopes(scope).
		Find(&rows).Statement
	return stmt.SQL.String()
}

func TestPostScope(t *testing.T) {
	setupMockDB(t)

	sql := dryRunSQL(t, PostScope([]string{"blog-1"}), "posts")
	assert.Contains(t, sql, "blog_id NOT IN")

	sql = dryRunSQL(t, PostScope(nil), "posts")
	assert.NotContains(t, sql, "NOT IN")
}

func TestCommentScope(t *testing.T) {
	setupMockDB(t)

	sql := dryRunSQL(t, CommentScope([]string{"blog-1"}, []string{"user-1"}), "comments")
	assert.Contains(t, sql, "post_id NOT IN (SELECT id FROM posts WHERE blog_id IN")
	assert.Contains(t, sql, "user_id NOT IN")

	sql = dryRunSQL(t, CommentScope(nil, nil), "comments")
	assert.NotContains(t, sql, "NOT IN")
}

func TestBlogScope(t *testing.T) {
	setupMockDB(t)

	sql := dryRunSQL(t, BlogScope(false), "blogs")
	assert.Contains(t, sql, "banned = false")

	sql = dryRunSQL(t, BlogScope(true), "blogs")
	assert.NotContains(t, sql, "banned")
}

func TestPostVisible(t *testing.T) {
	tests := []struct {
		name        string
		bannedCount int64
		expected    bool
	}{
		{"blog alive", 0, true},
		{"blog banned", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectQuery("SELECT count").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.bannedCount))

			visible, err := PostVisible("blog-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, visible)
		})
	}
}

func TestCommentVisible(t *testing.T) {
	tests := []struct {
		name        string
		blogBanned  int64
		userBanned  int64
		secondQuery bool
		expected    bool
	}{
		{"both clean", 0, 0, true, true},
		{"blog banned short-circuits", 1, 0, false, false},
		{"author banned", 0, 1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectQuery("SELECT count").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.blogBanned))
			if tt.secondQuery {
				mock.ExpectQuery("SELECT count").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.userBanned))
			}

			visible, err := CommentVisible("blog-1", "user-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, visible)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBlogVisible(t *testing.T) {
	assert.True(t, BlogVisible(false, false))
	assert.True(t, BlogVisible(true, true))
	assert.False(t, BlogVisible(true, false))
}
