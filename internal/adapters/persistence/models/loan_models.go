package models

import (
	"time"
)

// ============================================================
// Form templates & loan submissions
// ============================================================

// TemplateField is one field declaration inside a template page
type TemplateField struct {
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Fixed    bool     `json:"fixed,omitempty"`
}

// TemplatePage is one page of a multi-page loan form
type TemplatePage struct {
	PageNumber int             `json:"pageNumber"`
	Title      string          `json:"title"`
	Fields     []TemplateField `json:"fields"`
}

// LoanFormTemplate represents loan_form_templates table. Pages are stored
// as a JSON document; submissions copy them, they never reference back.
type LoanFormTemplate struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	LoanType  string         `gorm:"size:20;not null;index" json:"loan_type"`
	Pages     []TemplatePage `gorm:"serializer:json" json:"pages"`
	CreatedBy *uint          `json:"created_by,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanFormTemplate) TableName() string {
	return "loan_form_templates"
}

// FieldValue is one materialized field of a submission
type FieldValue struct {
	Label      string      `json:"label"`
	Value      interface{} `json:"value"`
	IsDocument bool        `json:"isDocument"`
}

// PageValue is one materialized page of a submission
type PageValue struct {
	PageNumber int          `json:"pageNumber"`
	Title      string       `json:"title"`
	Fields     []FieldValue `json:"fields"`
}

// Loan represents loans table. Values hold the full template snapshot
// plus submitted data; template edits after creation do not affect it.
type Loan struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Values           []PageValue `gorm:"serializer:json" json:"values"`
	Subscriber       string      `gorm:"size:100" json:"subscriber"`
	LoanType         string      `gorm:"size:20;not null;index" json:"loan_type"`
	LoanSubType      string      `gorm:"size:50" json:"loan_sub_type"`
	Status           string      `gorm:"size:20;default:'pending';index" json:"status"`
	RejectionMessage *string     `gorm:"type:text" json:"rejection_message,omitempty"`
	DsaID            *uint       `gorm:"index" json:"dsa_id,omitempty"`
	RmID             *uint       `gorm:"index" json:"rm_id,omitempty"`
	CreatedAt        time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Populated by the chat side-channel for listings, never stored.
	UnreadCount int64 `gorm:"-" json:"unread_count"`
}

func (Loan) TableName() string {
	return "loans"
}

// IsTerminal reports whether the loan has reached a final status
func (l *Loan) IsTerminal() bool {
	return l.Status == "approved" || l.Status == "rejected"
}

// ============================================================
// Commission & withdrawal ledgers
// ============================================================

// Commission represents commissions table. One commission per loan;
// dsa/rm identities are snapshots taken from the loan at creation.
type Commission struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LoanID     uint      `gorm:"uniqueIndex;not null" json:"loan_id"`
	DsaID      *uint     `gorm:"index" json:"dsa_id,omitempty"`
	RmID       *uint     `gorm:"index" json:"rm_id,omitempty"`
	Amount     float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Percentage float64   `gorm:"type:decimal(5,2)" json:"percentage"`
	Status     string    `gorm:"size:20;default:'pending';index" json:"status"`
	CreatedBy  uint      `json:"created_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Loan *Loan  `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
	Dsa  *Admin `gorm:"foreignKey:DsaID" json:"dsa,omitempty"`
	Rm   *Admin `gorm:"foreignKey:RmID" json:"rm,omitempty"`
}

func (Commission) TableName() string {
	return "commissions"
}

// IsTerminal reports whether the commission can no longer change status
func (c *Commission) IsTerminal() bool {
	return c.Status == "credited" || c.Status == "rejected"
}

// WithdrawRequest represents withdraw_requests table. While pending, the
// requested amount sits in the admin's reservedBalance.
type WithdrawRequest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Amount      float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status      string     `gorm:"size:20;default:'pending';index" json:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	ProcessedBy *uint      `json:"processed_by,omitempty"`
	Remarks     string     `gorm:"type:text" json:"remarks"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User *Admin `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (WithdrawRequest) TableName() string {
	return "withdraw_requests"
}

// ============================================================
// Notifications & loan chat
// ============================================================

// Notification represents notifications table
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// LoanMessage represents loan_messages table. ReadBy lists admin IDs
// that have seen the message.
type LoanMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LoanID      uint      `gorm:"index;not null" json:"loan_id"`
	SenderID    *uint     `gorm:"index" json:"sender_id,omitempty"`
	SenderName  string    `gorm:"size:100" json:"sender_name"`
	SenderRole  string    `gorm:"size:20" json:"sender_role"`
	Type        string    `gorm:"size:20;default:'text'" json:"type"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Attachments []string  `gorm:"serializer:json" json:"attachments"`
	ReadBy      []uint    `gorm:"serializer:json" json:"read_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (LoanMessage) TableName() string {
	return "loan_messages"
}

// ReadByUser reports whether the given admin has read the message
func (m *LoanMessage) ReadByUser(userID uint) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}
