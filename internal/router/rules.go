package router

import "strings"

// Any matches questions containing at least one of the substrings.
func Any(subs ...string) Predicate {
	return func(q string) bool {
		for _, s := range subs {
			if strings.Contains(q, s) {
				return true
			}
		}
		return false
	}
}

// Without narrows p to questions containing none of the substrings.
func Without(p Predicate, subs ...string) Predicate {
	return func(q string) bool {
		return p(q) && !Any(subs...)(q)
	}
}

// Or matches when any predicate matches.
func Or(ps ...Predicate) Predicate {
	return func(q string) bool {
		for _, p := range ps {
			if p(q) {
				return true
			}
		}
		return false
	}
}

// DefaultRules returns the rule list in priority order. Narrow topics come
// before broad ones that would otherwise swallow them: pre-birth orders
// before state law, failed transfers before transfers.
func DefaultRules() []Rule {
	return []Rule{
		{"prebirth", Any("pre-birth", "prebirth", "birth order", "parentage order"), preBirth},
		{"state_law", Or(Any("my state", "state law", "legal in"), Without(Any("law"), "attorney")), stateLaw},
		{"compensation", Any("how much", "compensation", "pay", "earn", "money", "salary", "paid"), compensation},
		{"requirements", Any("requirement", "qualify", "eligible", "screening", "can i be", "bmi", "age limit"), byRole("requirements")},
		{"contract", Any("contract", "agreement", "sign", "legal document"), byRole("contract")},
		{"escrow", Any("escrow", "seedtrust", "fund", "trust account"), byRole("escrow")},
		{"medication", Any("medication", "shot", "injection", "pio", "lupron", "progesterone", "estrogen", "needle"), byRole("medication")},
		{"failed_transfer", Any("fail", "negative", "didn't work", "not pregnant", "miscarriage", "loss"), byRole("failed_transfer")},
		{"transfer", Any("transfer", "embryo", "implant", "beta", "procedure"), byRole("transfer")},
		{"timeline", Any("how long", "timeline", "duration", "time", "months", "weeks"), timeline},
		{"insurance", Any("insurance", "coverage", "health plan"), byRole("insurance")},
		{"relationship", Any("relationship", "communicate", "conflict", "boundaries", "ips", "carrier", "intended parent"), byRole("relationship")},
		{"matching", Any("match", "find", "looking for", "profile", "agency"), byRole("matching")},
		{"after_birth", Any("after birth", "postpartum", "delivery", "hospital", "birth plan"), byRole("after_birth")},
		{"ivf", Any("ivf", "egg", "sperm", "donor", "embryo", "retrieval", "pgt"), byRole("ivf")},
		{"twins", Any("twin", "multiple", "two embryo", "triplet"), byRole("twins")},
		{"getting_started", Any("start", "begin", "first", "new to", "getting started", "where do i"), byRole("getting_started")},
		{"agency", Any("agency", "independent", "without agency", "need an agency", "use agency"), byRole("agency")},
		{"worries", Any("worried", "scared", "nervous", "afraid", "anxiety", "concern"), byRole("worries")},
		{"taxes", Any("tax", "irs", "income", "1099"), byRole("taxes")},
		{"psychological", Any("psych", "mental", "counsel", "therap", "emotional", "feel"), byRole("psychological")},
		{"risks", Any("risk", "danger", "complication", "safe", "what if", "worst"), byRole("risks")},
		{"travel", Any("travel", "distance", "different state", "move", "relocate", "far away"), byRole("travel")},
		{"lgbtq", Any("gay", "lesbian", "lgbt", "same-sex", "same sex", "two mom", "two dad"), byRole("lgbtq")},
		{"single_parent", Any("single", "alone", "by myself", "one parent", "unmarried"), byRole("single_parent")},
	}
}
