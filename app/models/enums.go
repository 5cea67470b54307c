package models

// GenericStatus defines the lifecycle status shared by most records.
type GenericStatus string

const (
	StatusActive            GenericStatus = "ACTIVE"
	StatusInactive          GenericStatus = "INACTIVE"
	StatusPendingActivation GenericStatus = "PENDING_ACTIVATION"
)

// AccountType defines the kind of portal account a membership belongs to.
type AccountType string

const (
	MemberAccount    AccountType = "MEMBER_ACCOUNT"
	ExecutiveAccount AccountType = "EXECUTIVE_ACCOUNT"
)

// AssociationType defines the category of an association.
type AssociationType string

const (
	CooperativeAssociation  AssociationType = "COOPERATIVE"
	AlumniAssociation       AssociationType = "ALUMNI"
	ProfessionalAssociation AssociationType = "PROFESSIONAL_BODY"
	SocialAssociation       AssociationType = "SOCIAL_CLUB"
)

// BillingCycle defines how often a service fee generates bills.
type BillingCycle string

const (
	CycleWeekly    BillingCycle = "WEEKLY"
	CycleMonthly   BillingCycle = "MONTHLY"
	CycleQuarterly BillingCycle = "QUARTERLY"
	CycleAnnually  BillingCycle = "ANNUALLY"
	CycleOneTime   BillingCycle = "ONE_TIME"
)

// ServiceType defines the category of a service fee.
type ServiceType string

const (
	DuesService     ServiceType = "DUES"
	LevyService     ServiceType = "LEVY"
	DonationService ServiceType = "DONATION"
)

// PaymentStatus defines the settlement state of a bill or invoice.
type PaymentStatus string

const (
	PaymentNotPaid       PaymentStatus = "NOT_PAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
)

// TransactionStatus defines the state of a payment transaction.
// CONFIRMED and FAILED are terminal; UNRECONCILED marks a confirmed payment
// whose request/invoice/bill chain could not be resolved.
type TransactionStatus string

const (
	TransactionPending      TransactionStatus = "PENDING"
	TransactionConfirmed    TransactionStatus = "CONFIRMED"
	TransactionFailed       TransactionStatus = "FAILED"
	TransactionUnreconciled TransactionStatus = "UNRECONCILED"
)

// IsTerminal reports whether the transaction can no longer change state.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionConfirmed || s == TransactionFailed || s == TransactionUnreconciled
}
