package docstore

import (
	"fmt"
	"strings"
	"time"
)

// Document paths are the persisted layout contract:
//
//	users/{uid}
//	logins/{email}
//	users/{uid}/periods/{year}/{month}/active
//	users/{uid}/predictions/{year}/{month}/active
//
// Year and month segments are zero padded so paths sort naturally.

const UserPathPrefix = "users/"

func UserPath(uid string) string {
	return UserPathPrefix + uid
}

func LoginPath(email string) string {
	return "logins/" + strings.ToLower(strings.TrimSpace(email))
}

func PeriodPath(uid string, year int, month time.Month) string {
	return fmt.Sprintf("users/%s/periods/%04d/%02d/active", uid, year, int(month))
}

func PredictionPath(uid string, year int, month time.Month) string {
	return fmt.Sprintf("users/%s/predictions/%04d/%02d/active", uid, year, int(month))
}

// MonthKey returns the month partition a calendar date belongs to.
func MonthKey(date time.Time) (int, time.Month) {
	return date.Year(), date.Month()
}

// PreviousMonth and NextMonth step the partition key directly on the
// (year, month) pair. Date arithmetic on time.Time would normalize
// day-of-month overflow (March 31 minus one month lands in early March),
// so year rollover is handled explicitly here.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// ProfileUID extracts the uid from a top-level profile path. The second
// return is false for nested documents such as period records.
func ProfileUID(path string) (string, bool) {
	trimmed := strings.TrimPrefix(path, UserPathPrefix)
	if trimmed == path || trimmed == "" || strings.Contains(trimmed, "/") {
		return "", false
	}
	return trimmed, true
}
