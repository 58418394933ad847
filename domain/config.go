package domain

// RetentionConfig holds the fixed rule inputs for one run.
type RetentionConfig struct {
	Owner        string   // Screen name of the account being curated
	SafeHashtags []string // Hashtags (without '#') that protect a non-RT post
	SafeText     []string // Case-insensitive substrings that protect a non-RT post
	SafeIDs      []string // Literal post ids that are never deleted
	SafePrefixes []string // Text prefixes that are never deleted

	// OlderThanDays keeps anything this many days old or younger. Nil
	// disables the age rule.
	OlderThanDays *int

	OnlyRetweets bool
	OnlyMentions bool
}

// NormalMode reports whether neither restricted mode is active.
func (c RetentionConfig) NormalMode() bool {
	return !c.OnlyRetweets && !c.OnlyMentions
}
