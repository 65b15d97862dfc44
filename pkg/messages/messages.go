package messages

const (
	AvatarInvalidType      = "only jpeg, jpg, png, gif and webp images are allowed"
	AvatarRequired         = "an avatar image is required"
	AvatarTooLarge         = "avatar exceeds the %d MiB limit"
	DuplicateRankName      = "rank name %q is used more than once"
	FiltersNotNil          = "filters can't be nil"
	LeaderboardDeleted     = "leaderboard deleted"
	LeaderboardIdRequired  = "leaderboardId is required"
	LeaderboardNotFound    = "leaderboard %s not found"
	MemberDeleted          = "member deleted"
	MemberNotFound         = "member %s not found"
	NameRequired           = "name is required"
	RankColorRequired      = "rank %d: color is required"
	RankNameRequired       = "rankName is required"
	RankNameRequiredAt     = "rank %d: name is required"
	RanksRequired          = "at least one rank is required"
	UpdatesRequired        = "updates must be an array of {id, rankName, order}"
	UnsupportedStorageType = "unsupported avatar storage %q"
)
