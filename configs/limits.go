package configs

// Paging limits for the feed surfaces.
const (
	DefaultLimitFeed     int64 = 20
	MaxLimitFeed         int64 = 100
	DefaultLimitTrending int64 = 10
	MaxLimitTrending     int64 = 50
)
