package like

import (
	"testing"
	"time"

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

func likeColumns() []string {
	return []string{"id", "subject_id", "subject_kind", "user_id", "user_login", "status", "added_at"}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input     string
		expected  Status
		expectErr bool
	}{
		{"None", StatusNone, false},
		{"Like", StatusLike, false},
		{"Dislike", StatusDislike, false},
		{"like", "", true},
		{"", "", true},
		{"Super", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, err := ParseStatus(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, status)
			}
		})
	}
}

func TestSetStatusNoneDeletesRecord(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM \"likes\"").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := SetStatus("post-1", SubjectPost, "user-1", "login-1", StatusNone)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusUpserts(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO \"likes\"").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("like-1"))
	mock.ExpectCommit()

	err := SetStatus("post-1", SubjectPost, "user-1", "login-1", StatusLike)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViewerStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		userID   string
		rows     *sqlmock.Rows
		expected Status
	}{
		{
			name:     "viewer has a like",
			userID:   "user-1",
			rows:     sqlmock.NewRows(likeColumns()).AddRow("l1", "post-1", "post", "user-1", "login-1", "Like", now),
			expected: StatusLike,
		},
		{
			name:     "viewer has a dislike",
			userID:   "user-1",
			rows:     sqlmock.NewRows(likeColumns()).AddRow("l1", "post-1", "post", "user-1", "login-1", "Dislike", now),
			expected: StatusDislike,
		},
		{
			name:     "viewer has no record",
			userID:   "user-2",
			rows:     sqlmock.NewRows(likeColumns()),
			expected: StatusNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectQuery("SELECT").WillReturnRows(tt.rows)

			status, err := ViewerStatus("post-1", SubjectPost, tt.userID)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestViewerStatusAnonymous(t *testing.T) {
	// No query must be issued for an anonymous viewer.
	mock := setupMockDB(t)

	status, err := ViewerStatus("post-1", SubjectPost, "")

	assert.NoError(t, err)
	assert.Equal(t, StatusNone, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRawLikesForNewestFirst(t *testing.T) {
	mock := setupMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(likeColumns()).
		AddRow("l3", "post-1", "post", "user-3", "login-3", "Like", now).
		AddRow("l2", "post-1", "post", "user-2", "login-2", "Dislike", now.Add(-time.Minute)).
		AddRow("l1", "post-1", "post", "user-1", "login-1", "Like", now.Add(-time.Hour))
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	records, err := RawLikesFor("post-1", SubjectPost)

	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "user-3", records[0].UserID)
	assert.Equal(t, "user-1", records[2].UserID)
}
