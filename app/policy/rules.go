package policy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/CrestNiraj12/curatetl/domain"
)

func keepByDefault(domain.Post, Context, domain.RetentionConfig) (Verdict, bool) {
	return Verdict{Delete: false, Reason: "default"}, true
}

// normalMode deletes everything unless a protection applies. It abstains
// when a restricted mode is active.
func normalMode(p domain.Post, ctx Context, cfg domain.RetentionConfig) (Verdict, bool) {
	if !cfg.NormalMode() {
		return Verdict{}, false
	}

	if !p.IsRetweet() {
		if tag, ok := firstSafeHashtag(p.Hashtags, cfg.SafeHashtags); ok {
			return Verdict{Reason: "safe hashtag #" + tag}, true
		}
		if text, ok := firstSafeText(p.Text, cfg.SafeText); ok {
			return Verdict{Reason: fmt.Sprintf("safe text %q", text)}, true
		}
	}
	if repliesToVisibleOwnPost(p, ctx.Posts, cfg.Owner) {
		return Verdict{Reason: "reply in own thread"}, true
	}

	return Verdict{Delete: true, Reason: "not protected"}, true
}

func onlyRetweets(p domain.Post, _ Context, cfg domain.RetentionConfig) (Verdict, bool) {
	if !cfg.OnlyRetweets || !p.IsRetweet() {
		return Verdict{}, false
	}
	return Verdict{Delete: true, Reason: "retweet"}, true
}

func onlyMentions(p domain.Post, _ Context, cfg domain.RetentionConfig) (Verdict, bool) {
	if !cfg.OnlyMentions || !p.IsMention() {
		return Verdict{}, false
	}
	return Verdict{Delete: true, Reason: "mention"}, true
}

func safePrefix(p domain.Post, _ Context, cfg domain.RetentionConfig) (Verdict, bool) {
	for _, prefix := range cfg.SafePrefixes {
		if prefix != "" && strings.HasPrefix(p.Text, prefix) {
			return Verdict{Reason: fmt.Sprintf("safe prefix %q", prefix)}, true
		}
	}
	return Verdict{}, false
}

func safeID(p domain.Post, _ Context, cfg domain.RetentionConfig) (Verdict, bool) {
	if !slices.Contains(cfg.SafeIDs, p.ID) {
		return Verdict{}, false
	}
	return Verdict{Reason: "safe id"}, true
}

// tooRecent keeps posts aged at most OlderThanDays. It never forces a delete.
func tooRecent(p domain.Post, ctx Context, cfg domain.RetentionConfig) (Verdict, bool) {
	if cfg.OlderThanDays == nil {
		return Verdict{}, false
	}
	age := p.DaysOld(ctx.Now)
	if age > *cfg.OlderThanDays {
		return Verdict{}, false
	}
	return Verdict{Reason: fmt.Sprintf("%d days old", age)}, true
}

func firstSafeHashtag(tags, safe []string) (string, bool) {
	for _, tag := range tags {
		if slices.Contains(safe, tag) {
			return tag, true
		}
	}
	return "", false
}

func firstSafeText(text string, safe []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, s := range safe {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			return s, true
		}
	}
	return "", false
}

// repliesToVisibleOwnPost is true for a reply to the owner whose parent was
// fetched. A parent that was never loaded does not protect the reply.
func repliesToVisibleOwnPost(p domain.Post, set domain.PostSet, owner string) bool {
	if p.InReplyToAuthor == "" || owner == "" {
		return false
	}
	if !strings.EqualFold(p.InReplyToAuthor, owner) {
		return false
	}
	return set.Has(p.InReplyToID)
}
