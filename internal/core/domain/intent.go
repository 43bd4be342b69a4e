package domain

// IntentKind tags the variant of a classified query.
type IntentKind string

// Intent variants in classifier priority order.
const (
	IntentGreeting        IntentKind = "greeting"
	IntentThanks          IntentKind = "thanks"
	IntentFarewell        IntentKind = "farewell"
	IntentSelfReferential IntentKind = "self_referential"
	IntentCompanyProfile  IntentKind = "company_profile"
	IntentWhoIs           IntentKind = "who_is"
	IntentNone            IntentKind = "none"
)

// IsQuickReply returns true for intents answered with a fixed reply.
func (k IntentKind) IsQuickReply() bool {
	return k == IntentGreeting || k == IntentThanks || k == IntentFarewell
}

// Classification is the result of classifying one raw query.
// Only the field matching Kind is populated.
type Classification struct {
	// Kind is the first intent that matched.
	Kind IntentKind

	// Reply is the fixed reply for quick-reply intents.
	Reply string

	// Name is the subject captured by a who-is query.
	Name string
}
