package like

import (
	"time"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/apperror"
)

// Status is a viewer's vote on a subject.
type Status string

const (
	StatusNone    Status = "None"
	StatusLike    Status = "Like"
	StatusDislike Status = "Dislike"
)

// ParseStatus validates the wire value of a like status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNone, StatusLike, StatusDislike:
		return Status(s), nil
	}
	return "", apperror.ErrBadRequest
}

// SubjectKind separates post likes from comment likes in one table.
type SubjectKind string

const (
	SubjectPost    SubjectKind = "post"
	SubjectComment SubjectKind = "comment"
)

// Record is one vote. At most one row per (subject_id, subject_kind,
// user_id); status None is represented by the absence of a row.
type Record struct {
	ID          string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SubjectID   string      `json:"subject_id" gorm:"uniqueIndex:idx_subject_user;index"`
	SubjectKind SubjectKind `json:"subject_kind" gorm:"uniqueIndex:idx_subject_user"`
	UserID      string      `json:"user_id" gorm:"uniqueIndex:idx_subject_user"`
	UserLogin   string      `json:"user_login"`
	Status      Status      `json:"status"`
	AddedAt     time.Time   `json:"added_at" gorm:"index"`
}

func (Record) TableName() string {
	return "likes"
}
