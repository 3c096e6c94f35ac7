package like

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
)

// SetStatus records a viewer's vote on a subject. Status None deletes
// the pair's row; anything else upserts it atomically, so concurrent
// submissions for the same pair resolve last-writer-wins at the
// database. Re-sending the current status refreshes added_at: the
// upsert writes the timestamp unconditionally, which keeps the
// operation a single statement.
func SetStatus(subjectID string, kind SubjectKind, userID, userLogin string, status Status) error {
	if status == StatusNone {
		return database.DB.
			Where("subject_id = ? AND subject_kind = ? AND user_id = ?", subjectID, kind, userID).
			Delete(&Record{}).Error
	}

	record := Record{
		ID:          uuid.New().String(),
		SubjectID:   subjectID,
		SubjectKind: kind,
		UserID:      userID,
		UserLogin:   userLogin,
		Status:      status,
		AddedAt:     time.Now(),
	}
	return database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject_id"}, {Name: "subject_kind"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "added_at", "user_login"}),
	}).Create(&record).Error
}

// ViewerStatus returns the viewer's own vote, None for anonymous
// viewers or when no row exists. This lookup is deliberately not ban
// filtered: a user always sees their own vote.
func ViewerStatus(subjectID string, kind SubjectKind, userID string) (Status, error) {
	if userID == "" {
		return StatusNone, nil
	}
	var record Record
	err := database.DB.
		Where("subject_id = ? AND subject_kind = ? AND user_id = ?", subjectID, kind, userID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusNone, nil
		}
		return StatusNone, err
	}
	return record.Status, nil
}

// RawLikesFor returns every surviving record for a subject, newest
// first (ties broken by row id, i.e. insertion order). Ban filtering
// is the aggregation engine's job, not the ledger's.
func RawLikesFor(subjectID string, kind SubjectKind) ([]Record, error) {
	var records []Record
	err := database.DB.
		Where("subject_id = ? AND subject_kind = ?", subjectID, kind).
		Order("added_at DESC, id DESC").
		Find(&records).Error
	return records, err
}

// DeleteAllForSubject is the cascade cleanup hook for subject deletion.
func DeleteAllForSubject(tx *gorm.DB, subjectID string, kind SubjectKind) error {
	return tx.Where("subject_id = ? AND subject_kind = ?", subjectID, kind).Delete(&Record{}).Error
}
