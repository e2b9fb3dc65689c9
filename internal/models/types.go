package models

// Role identifies the account tier. Master accounts are tenant-less; every
// other role is scoped to exactly one tenant.
type Role string

const (
	RoleAgent          Role = "agent"
	RoleSupervisor     Role = "supervisor"
	RoleSubsystemAdmin Role = "subsystem_admin"
	RoleMaster         Role = "master"
)

// TicketStatus is the ticket state machine. pending_validation is the only
// initial state; validated and rejected are terminal.
type TicketStatus string

const (
	TicketPending   TicketStatus = "pending_validation"
	TicketValidated TicketStatus = "validated"
	TicketRejected  TicketStatus = "rejected"
)

// SubscriptionType is the tenant plan tier.
type SubscriptionType string

const (
	SubscriptionBasic      SubscriptionType = "basic"
	SubscriptionStandard   SubscriptionType = "standard"
	SubscriptionPremium    SubscriptionType = "premium"
	SubscriptionEnterprise SubscriptionType = "enterprise"
)

// gameMultipliers maps each playable game type to its fixed payout
// multiplier. Unknown game types are rejected at ticket creation, they do
// not fall back to a default.
var gameMultipliers = map[string]float64{
	"borlette": 70,
	"lotto-3":  500,
	"lotto-4":  5000,
	"lotto-5":  75000,
	"grap":     7,
	"marriage": 35,
}

// MultiplierFor returns the payout multiplier for a game type.
func MultiplierFor(gameType string) (float64, bool) {
	m, ok := gameMultipliers[gameType]
	return m, ok
}

// GameTypes lists the known game types.
func GameTypes() []string {
	types := make([]string, 0, len(gameMultipliers))
	for t := range gameMultipliers {
		types = append(types, t)
	}
	return types
}
