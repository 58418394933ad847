// Package policy decides which posts are kept and which are deleted.
//
// The decision is an ordered chain of rules. Each rule either abstains or
// returns a verdict, and the last rule that applies wins, so rules placed
// later override rules placed earlier.
package policy

import (
	"time"

	"github.com/CrestNiraj12/curatetl/domain"
)

// Context carries the inputs a decision needs besides the post itself.
type Context struct {
	// Posts is every post known for the run; it resolves reply parents.
	Posts domain.PostSet

	// Now is the reference time for the age rule.
	Now time.Time
}

// Verdict is the outcome of one rule.
type Verdict struct {
	Delete bool
	Reason string
}

// Rule inspects a post and returns a verdict when it applies.
type Rule struct {
	Name  string
	Apply func(p domain.Post, ctx Context, cfg domain.RetentionConfig) (Verdict, bool)
}

// Rules is the fixed evaluation order.
var Rules = []Rule{
	{Name: "default", Apply: keepByDefault},
	{Name: "normal", Apply: normalMode},
	{Name: "only-retweets", Apply: onlyRetweets},
	{Name: "only-mentions", Apply: onlyMentions},
	{Name: "safe-prefix", Apply: safePrefix},
	{Name: "safe-id", Apply: safeID},
	{Name: "too-recent", Apply: tooRecent},
}

// Decide reports whether p should be deleted.
func Decide(p domain.Post, ctx Context, cfg domain.RetentionConfig) bool {
	return Explain(p, ctx, cfg).Delete
}

// Explain runs the rule chain and returns the deciding verdict.
func Explain(p domain.Post, ctx Context, cfg domain.RetentionConfig) Verdict {
	var out Verdict
	for _, r := range Rules {
		if v, ok := r.Apply(p, ctx, cfg); ok {
			out = v
		}
	}
	return out
}

// Seen reports ids that were already processed in an earlier run.
type Seen interface {
	Contains(id string) bool
}

// Plan returns the posts to delete, newest first. Posts whose ids are in
// done are left out. done may be nil.
func Plan(set domain.PostSet, done Seen, cfg domain.RetentionConfig, now time.Time) []domain.Post {
	ctx := Context{Posts: set, Now: now}

	var out []domain.Post
	for _, p := range set.Sorted() {
		if done != nil && done.Contains(p.ID) {
			continue
		}
		if Decide(p, ctx, cfg) {
			out = append(out, p)
		}
	}
	return out
}
