package aggregate

import (
	"sync"
	"time"

	"github.com/NikitaSavelev/BlogDeck-Back/internal/database"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/like"
	"github.com/NikitaSavelev/BlogDeck-Back/internal/moderation"
)

const newestLikesLimit = 3

// ExtendedLikesInfo is the viewer-specific view of a subject's likes.
// It is computed fresh on every request; no counter is cached anywhere
// that could go stale against the ban state.
type ExtendedLikesInfo struct {
	LikesCount    int           `json:"likesCount"`
	DislikesCount int           `json:"dislikesCount"`
	MyStatus      like.Status   `json:"myStatus"`
	NewestLikes   []LikeDetails `json:"newestLikes"`
}

// LikesInfo is the comment flavour: counts and own status, no likers
// preview.
type LikesInfo struct {
	LikesCount    int         `json:"likesCount"`
	DislikesCount int         `json:"dislikesCount"`
	MyStatus      like.Status `json:"myStatus"`
}

type LikeDetails struct {
	AddedAt time.Time `json:"addedAt"`
	UserID  string    `json:"userId"`
	Login   string    `json:"login"`
}

// Exclusions is the per-request snapshot of like authors to ignore:
// users banned globally, plus (blog, user) pairs banned per blog. It
// is loaded with two queries before a page fan-out and shared across
// all items of the page.
type Exclusions struct {
	global map[string]bool
	scoped map[blogUser]bool
}

type blogUser struct {
	blogID string
	userID string
}

// LoadExclusions reads the current ban state from the registry.
func LoadExclusions() (Exclusions, error) {
	globalIDs, err := moderation.BannedUserIDs()
	if err != nil {
		return Exclusions{}, err
	}

	var pairs []moderation.BlogBan
	if err := database.DB.Where("banned = true").Find(&pairs).Error; err != nil {
		return Exclusions{}, err
	}

	excl := Exclusions{
		global: make(map[string]bool, len(globalIDs)),
		scoped: make(map[blogUser]bool, len(pairs)),
	}
	for _, id := range globalIDs {
		excl.global[id] = true
	}
	for _, pair := range pairs {
		excl.scoped[blogUser{pair.BlogID, pair.UserID}] = true
	}
	return excl, nil
}

// Excluded reports whether a like author is suppressed for subjects of
// the given blog.
func (e Exclusions) Excluded(blogID, userID string) bool {
	return e.global[userID] || e.scoped[blogUser{blogID, userID}]
}

// BuildLikesInfo composes the ledger and the ban state into the view
// model for one subject:
//
//   - counts drop records whose author is excluded for the subject's
//     blog;
//   - newestLikes keeps the up-to-3 most recent surviving Like records
//     (the ledger already orders newest first);
//   - myStatus comes from the viewer's own row and is never
//     suppressed, even when the viewer is in the excluded set. Ban
//     filtering changes how the viewer is perceived by others' counts,
//     not their own view of their vote.
func BuildLikesInfo(subjectID string, kind like.SubjectKind, blogID, viewerID string, excl Exclusions) (ExtendedLikesInfo, error) {
	info := ExtendedLikesInfo{
		MyStatus:    like.StatusNone,
		NewestLikes: []LikeDetails{},
	}

	records, err := like.RawLikesFor(subjectID, kind)
	if err != nil {
		return info, err
	}

	for _, record := range records {
		if excl.Excluded(blogID, record.UserID) {
			continue
		}
		switch record.Status {
		case like.StatusLike:
			info.LikesCount++
			if len(info.NewestLikes) < newestLikesLimit {
				info.NewestLikes = append(info.NewestLikes, LikeDetails{
					AddedAt: record.AddedAt,
					UserID:  record.UserID,
					Login:   record.UserLogin,
				})
			}
		case like.StatusDislike:
			info.DislikesCount++
		}
	}

	info.MyStatus, err = like.ViewerStatus(subjectID, kind, viewerID)
	return info, err
}

// BuildCommentLikesInfo is BuildLikesInfo without the likers preview.
func BuildCommentLikesInfo(commentID, blogID, viewerID string, excl Exclusions) (LikesInfo, error) {
	full, err := BuildLikesInfo(commentID, like.SubjectComment, blogID, viewerID, excl)
	return LikesInfo{
		LikesCount:    full.LikesCount,
		DislikesCount: full.DislikesCount,
		MyStatus:      full.MyStatus,
	}, err
}

// ForPage runs fn for every index of a page concurrently, one
// goroutine per item. Each item's aggregation is independent, so the
// fan-out is bounded by the page size and shares no mutable state
// beyond the slice slot the index owns.
func ForPage(n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = fn(i)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
