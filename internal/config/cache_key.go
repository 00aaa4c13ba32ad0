package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding the active JTI of a user.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// ScheduleVersionKey returns the counter bumped on every lecture write.
// Weekly schedule entries embed it, so a bump orphans all cached weeks.
func (r *CacheKeyStruct) ScheduleVersionKey() string {
	return "schedule:version"
}

// WeekScheduleKey returns the cache key for one built week.
// scope is a stable string such as "standard:3" or "tutor:7" or "all".
func (r *CacheKeyStruct) WeekScheduleKey(scope, weekStart string, version int64) string {
	return fmt.Sprintf("schedule:v%d:%s:%s", version, scope, weekStart)
}

// AnnouncementsChannel returns the Redis PubSub channel for new announcements.
func (r *CacheKeyStruct) AnnouncementsChannel() string {
	return "announcements"
}

var CacheKey = NewCacheKeyStruct()
