// Package prompt routes campaigns to question templates by channel and
// composes the final generation prompt.
package prompt

import "strings"

// Strategy is one of the eight closed prompt variants. Each owns the channel
// values that select it, three question templates with the bracketed category
// labels the generated output must echo, and a framing instruction.
type Strategy struct {
	Name      string
	Labels    [3]string
	Questions [3]string
	Framing   string

	// channels this strategy matches, lower-case. Empty for the default.
	channels []string
}

func (s *Strategy) matches(channel string) bool {
	for _, c := range s.channels {
		if c == channel {
			return true
		}
	}
	return false
}

var (
	// RegularMarketing is the default strategy for any channel no other
	// strategy claims.
	RegularMarketing = &Strategy{
		Name:   "regular_marketing",
		Labels: [3]string{"Engagement", "Intent", "Next Steps"},
		Questions: [3]string{
			"What was the prospect doing when they engaged with this campaign?",
			"Why did they likely engage, and what does that suggest about their interest?",
			"What should a salesperson lead with in the first conversation?",
		},
		Framing: "Focus on the prospect's perspective and intent, not marketing terminology.",
	}

	SalesGenerated = &Strategy{
		Name:     "sales_generated",
		channels: []string{"sales generated"},
		Labels:   [3]string{"Source", "Data Origin", "Approach"},
		Questions: [3]string{
			"Make clear this is a sales-sourced contact, not inbound prospect engagement.",
			"Where did the contact data come from and why was this person identified?",
			"What cold outreach approach is most likely to land?",
		},
		Framing: "Focus on the sales context and potential fit, not prospect behavior, since the prospect has not engaged.",
	}

	PartnerReferral = &Strategy{
		Name:     "partner_referral",
		channels: []string{"referrals", "partner referral", "partner marketing", "resellers"},
		Labels:   [3]string{"Referral Source", "Fit/Alignment", "Leverage"},
		Questions: [3]string{
			"Who referred this prospect and through what relationship?",
			"Why does the referring partner believe this prospect is a fit?",
			"How can the salesperson use the referral relationship as an opener?",
		},
		Framing: "Lead with the warm introduction, since a referred prospect expects the referrer to be mentioned.",
	}

	ExistingCustomer = &Strategy{
		Name:     "existing_customer",
		channels: []string{"upsell", "cross-sell", "customer marketing"},
		Labels:   [3]string{"Relationship", "Expansion Signal", "Positioning"},
		Questions: [3]string{
			"What is the existing relationship with this account?",
			"What signal suggests the customer is ready to expand?",
			"How should the expansion conversation be positioned against what they already own?",
		},
		Framing: "Frame this as growing an existing relationship, never as a cold pitch.",
	}

	Events = &Strategy{
		Name:     "events",
		channels: []string{"corporate events", "field events", "tradeshows", "webinar", "webinars", "events"},
		Labels:   [3]string{"Event Context", "Engagement Level", "Follow-Up"},
		Questions: [3]string{
			"What kind of event did the prospect attend and in what setting?",
			"How actively did they participate? Registered, attended, or asked questions?",
			"What follow-up ties naturally back to the event experience?",
		},
		Framing: "Anchor the outreach to the shared event context while it is still fresh.",
	}

	HighIntent = &Strategy{
		Name:     "high_intent",
		channels: []string{"paid search", "sem", "content syndication"},
		Labels:   [3]string{"Search Behavior", "Trigger", "Urgency"},
		Questions: [3]string{
			"What was the prospect actively searching for when they found this campaign?",
			"What problem or event likely triggered the search?",
			"Why does their behavior suggest the timing is urgent?",
		},
		Framing: "Treat this as an in-market buyer who raised their hand. Speed matters more than nurture.",
	}

	RetargetingNurture = &Strategy{
		Name:     "retargeting_nurture",
		channels: []string{"retargeting", "paid social", "email nurture", "marketing nurture", "nurture"},
		Labels:   [3]string{"Prior Engagement", "Nurture Path", "Re-Engagement"},
		Questions: [3]string{
			"What earlier interaction put this prospect into the nurture flow?",
			"What content or sequence have they been receiving since?",
			"What would make re-engaging now feel like a continuation, not a restart?",
		},
		Framing: "The prospect has seen this brand before. Acknowledge the history instead of starting cold.",
	}

	AwarenessBroadcast = &Strategy{
		Name:     "awareness_broadcast",
		channels: []string{"display", "brand awareness", "out of home", "radio/tv", "podcast", "sponsorships"},
		Labels:   [3]string{"Reach Context", "Awareness Signal", "Conversation Starter"},
		Questions: [3]string{
			"Through what broad-reach placement did this prospect encounter the brand?",
			"What does responding to a broadcast touch say about their awareness stage?",
			"What low-pressure conversation starter fits an early-stage prospect?",
		},
		Framing: "Assume low intent. The goal of the first touch is curiosity, not a meeting.",
	}
)

// routed lists the non-default strategies in fixed priority order. Channel
// sets are mutually exclusive by construction, but selection keeps
// first-match-wins semantics in case they ever overlap.
var routed = []*Strategy{
	SalesGenerated,
	PartnerReferral,
	ExistingCustomer,
	Events,
	HighIntent,
	RetargetingNurture,
	AwarenessBroadcast,
}

// All returns every strategy, default first.
func All() []*Strategy {
	return append([]*Strategy{RegularMarketing}, routed...)
}

// Select routes a channel value to its strategy. Matching is
// case-insensitive; unknown or empty channels resolve to RegularMarketing, so
// every record always gets exactly one strategy.
func Select(channel string) *Strategy {
	c := strings.ToLower(strings.TrimSpace(channel))
	for _, s := range routed {
		if s.matches(c) {
			return s
		}
	}
	return RegularMarketing
}
