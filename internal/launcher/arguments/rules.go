package arguments

import (
	"regexp"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/meta/schema"
)

// EvaluateRules runs an ordered rule list against the context. Starting
// from disallow, every matching rule overwrites the verdict with its
// action, so the last match wins and an empty list stays disallowed.
func EvaluateRules(rules []schema.Rule, ctx *LaunchContext) bool {
	allowed := false
	for _, rule := range rules {
		if ruleMatches(&rule, ctx) {
			allowed = rule.Action == schema.ActionAllow
		}
	}
	return allowed
}

// ruleMatches reports whether a rule's predicate holds. A rule without
// features or OS descriptor matches unconditionally; upstream uses such
// bare allow rules as defaults ahead of OS-specific disallows.
func ruleMatches(rule *schema.Rule, ctx *LaunchContext) bool {
	if rule.Features != nil && !featuresMatch(rule.Features, ctx) {
		return false
	}
	if rule.OS != nil && !osMatches(rule.OS, ctx) {
		return false
	}
	return true
}

// featuresMatch requires every flag the predicate sets to be enabled in
// the context. Upstream sets exactly one flag per predicate.
func featuresMatch(f *schema.RuleFeatures, ctx *LaunchContext) bool {
	if f.IsDemoUser && !ctx.DemoUser {
		return false
	}
	if f.HasCustomResolution && !ctx.CustomResolution {
		return false
	}
	if f.HasQuickPlaysSupport && !ctx.QuickPlaysSupport {
		return false
	}
	if f.IsQuickPlaySingleplayer && !ctx.QuickPlaySingleplayer {
		return false
	}
	if f.IsQuickPlayMultiplayer && !ctx.QuickPlayMultiplayer {
		return false
	}
	if f.IsQuickPlayRealms && !ctx.QuickPlayRealms {
		return false
	}
	return true
}

// osMatches requires every present descriptor field to match the live
// system. A version regex that fails to compile never matches.
func osMatches(os *schema.RuleOS, ctx *LaunchContext) bool {
	if os.Name != nil && *os.Name != ctx.OSName {
		return false
	}
	if os.Arch != nil && *os.Arch != ctx.OSArch {
		return false
	}
	if os.Version != "" {
		re, err := regexp.Compile(os.Version)
		if err != nil || !re.MatchString(ctx.OSVersion) {
			return false
		}
	}
	return true
}
