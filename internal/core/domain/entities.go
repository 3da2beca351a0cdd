package domain

// Role represents an admin role in the system
type Role string

const (
	RoleSuperadmin Role = "SUPERADMIN"
	RoleRM         Role = "RM"
	RoleDSA        Role = "DSA"
)

// ValidRole checks whether a role string is one of the known roles
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleSuperadmin, RoleRM, RoleDSA:
		return true
	}
	return false
}

// Actor is the authenticated identity performing an operation.
// Every workflow call receives it explicitly; nothing reads it from
// ambient request state.
type Actor struct {
	UserID uint
	Role   Role
}

// IsSuperadmin reports whether the actor holds the SUPERADMIN role
func (a Actor) IsSuperadmin() bool {
	return a.Role == RoleSuperadmin
}

// IsRM reports whether the actor holds the RM role
func (a Actor) IsRM() bool {
	return a.Role == RoleRM
}

// IsDSA reports whether the actor holds the DSA role
func (a Actor) IsDSA() bool {
	return a.Role == RoleDSA
}

// Loan lifecycle statuses
const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusRejected = "rejected"
)

// Contact application statuses
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// ValidApplicationStatus checks whether an application status is one of the known statuses
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// Commission lifecycle statuses
const (
	CommissionStatusPending  = "pending"
	CommissionStatusApproved = "approved"
	CommissionStatusCredited = "credited"
	CommissionStatusRejected = "rejected"
)

// Withdrawal lifecycle statuses
const (
	WithdrawStatusPending   = "pending"
	WithdrawStatusApproved  = "approved"
	WithdrawStatusRejected  = "rejected"
	WithdrawStatusProcessed = "processed"
)

// Loan form categories
const (
	LoanTypePrivate    = "private"
	LoanTypeGovernment = "government"
	LoanTypeInsurance  = "insurance"
	LoanTypeQuick      = "quick"
	LoanTypeTaxation   = "taxation"
)

// ValidLoanType checks whether a loan type string is one of the known categories
func ValidLoanType(t string) bool {
	switch t {
	case LoanTypePrivate, LoanTypeGovernment, LoanTypeInsurance, LoanTypeQuick, LoanTypeTaxation:
		return true
	}
	return false
}

// Chat message types
const (
	MessageTypeText     = "text"
	MessageTypePhoto    = "photo"
	MessageTypeDocument = "document"
)

// ValidMessageType checks whether a chat message type is one of the known types
func ValidMessageType(t string) bool {
	switch t {
	case MessageTypeText, MessageTypePhoto, MessageTypeDocument:
		return true
	}
	return false
}

// Field types a form template may declare
const (
	FieldTypeText     = "text"
	FieldTypeNumber   = "number"
	FieldTypeSelect   = "select"
	FieldTypeDate     = "date"
	FieldTypeCheckbox = "checkbox"
	FieldTypeTextarea = "textarea"
	FieldTypeDocument = "document"
)

// ValidFieldType checks whether a field type string is one of the known types
func ValidFieldType(t string) bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeSelect, FieldTypeDate,
		FieldTypeCheckbox, FieldTypeTextarea, FieldTypeDocument:
		return true
	}
	return false
}
