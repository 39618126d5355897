package database

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Company is a tenant scope (fleet type) that partitions all other data.
// Companies are seeded at migration time and not editable at runtime.
type Company struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	FleetType string    `gorm:"size:16" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// User represents a back-office operator
type User struct {
	gorm.Model
	Name         string  `json:"name"`
	Email        string  `gorm:"uniqueIndex" json:"email"`
	PasswordHash string  `json:"-"`
	AvatarURL    string  `json:"avatar_url"`
	Role         string  `gorm:"size:16" json:"role"`
	CompanyID    *string `gorm:"size:32" json:"company_id"` // managers are scoped to one company, nil for admins
}

// ClientDocument is an identity document attached to a client (stored as JSON)
type ClientDocument struct {
	Type        string   `json:"type"` // id_card | passport
	Number      string   `json:"number"`
	IIN         string   `json:"iin"`
	Images      []string `json:"images"`
	DateOfBirth string   `json:"date_of_birth,omitempty"`
	IssueDate   string   `json:"issue_date,omitempty"`
	ExpiryDate  string   `json:"expiry_date,omitempty"`
	IssuedBy    string   `json:"issued_by,omitempty"`
}

// ClientContact is an emergency contact attached to a client (stored as JSON)
type ClientContact struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// DocumentList is a JSON column of client documents
type DocumentList []ClientDocument

// ContactList is a JSON column of emergency contacts
type ContactList []ClientContact

// Client represents a rental client
type Client struct {
	ID                string       `gorm:"primaryKey;size:64" json:"id"`
	CompanyID         string       `gorm:"size:32;index" json:"company_id"`
	Name              string       `json:"name"`
	Phone             string       `json:"phone"`
	Avatar            string       `json:"avatar"`
	Rating            string       `gorm:"size:16" json:"rating"`  // trusted | caution | blacklist
	Channel           string       `gorm:"size:32" json:"channel"` // website | whatsapp | telegram | instagram | phone | recommendation | old_client
	Documents         DocumentList `gorm:"type:text" json:"documents"`
	EmergencyContacts ContactList  `gorm:"type:text" json:"emergency_contacts"`

	// Aggregates, maintained by the recompute pass. Amounts in tenge.
	RentalCount   int   `json:"rental_count"`
	TotalAmount   int64 `json:"total_amount"`
	PaidAmount    int64 `json:"paid_amount"`
	DebtAmount    int64 `json:"debt_amount"`
	OverdueCount  int   `json:"overdue_count"`
	OverdueAmount int64 `json:"overdue_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tariff is a priced billing plan attached to a vehicle (stored as JSON)
type Tariff struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Period    string   `json:"period"`
	Days      string   `json:"days"`
	Price     int64    `json:"price"`
	IsAllDays bool     `json:"is_all_days"`
	WeekDays  []string `json:"week_days,omitempty"`
}

// TariffList is a JSON column of vehicle tariffs
type TariffList []Tariff

// Vehicle represents a fleet vehicle
type Vehicle struct {
	ID             string     `gorm:"primaryKey;size:64" json:"id"`
	CompanyID      string     `gorm:"size:32;index" json:"company_id"`
	Name           string     `json:"name"`
	Plate          string     `gorm:"index" json:"plate"`
	Image          string     `json:"image"`
	Status         string     `gorm:"size:16" json:"status"`    // available | rented | maintenance
	Condition      string     `gorm:"size:16" json:"condition"` // new | good | broken
	VIN            string     `json:"vin"`
	TechPassport   string     `json:"tech_passport"`
	Color          string     `json:"color"`
	Mileage        string     `json:"mileage"`
	InsuranceDate  string     `json:"insurance_date"`
	InspectionDate string     `json:"inspection_date"`
	Tariffs        TariffList `gorm:"type:text" json:"tariffs"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Rental links a client to a vehicle over a period. The client and vehicle
// display fields are a snapshot captured at link time, not a live join.
type Rental struct {
	ID        string `gorm:"primaryKey;size:16" json:"id"` // short numeric string, generated when absent
	CompanyID string `gorm:"size:32;index" json:"company_id"`
	Status    string `gorm:"size:16;index" json:"status"`

	ClientID  *string `gorm:"size:64;index" json:"client_id"`
	VehicleID *string `gorm:"size:64;index" json:"vehicle_id"`
	TariffID  *string `gorm:"size:64" json:"tariff_id"`

	// Denormalized snapshot of the linked client
	ClientName   string `json:"client_name"`
	ClientPhone  string `json:"client_phone"`
	ClientAvatar string `json:"client_avatar"`

	// Denormalized snapshot of the linked vehicle
	VehicleName  string `json:"vehicle_name"`
	VehiclePlate string `json:"vehicle_plate"`
	VehicleImage string `json:"vehicle_image"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// Amounts in tenge
	Amount  int64 `json:"amount"`
	Debt    int64 `json:"debt"`
	Fine    int64 `json:"fine"`
	Deposit int64 `json:"deposit"`

	PaymentStatus string `gorm:"size:16" json:"payment_status"` // pending | partially | paid
	Comment       string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Payment represents a recorded payment. Append-only; never mutated after
// creation except deletion.
type Payment struct {
	ID                string    `gorm:"primaryKey;size:64" json:"id"`
	CompanyID         string    `gorm:"size:32;index" json:"company_id"`
	RentalID          *string   `gorm:"size:16;index" json:"rental_id"`
	ClientID          *string   `gorm:"size:64;index" json:"client_id"`
	ResponsibleUserID uint      `json:"responsible_user_id"`
	Amount            int64     `json:"amount"`
	Type              string    `gorm:"size:16" json:"type"`   // income | expense
	Method            string    `gorm:"size:16" json:"method"` // cash | bank
	Comment           string    `json:"comment"`
	TransactionID     string    `json:"transaction_id"` // set when paid through the online gateway
	CreatedAt         time.Time `json:"created_at"`
}

// RentalHistory is an append-only audit record for a rental
type RentalHistory struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	RentalID   string    `gorm:"size:16;index" json:"rental_id"`
	UserID     *uint     `json:"user_id"`
	ActionType string    `gorm:"size:32" json:"action_type"` // status_change | payment | comment
	Details    string    `gorm:"type:text" json:"details"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notification carries a proposal produced by the background reconciliation
// pass (e.g. a rented rental whose period end has passed). Staff acts on it
// manually; the pass never changes rental status itself.
type Notification struct {
	gorm.Model
	CompanyID string `gorm:"size:32;index" json:"company_id"`
	RentalID  string `gorm:"size:16;index" json:"rental_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `gorm:"size:32" json:"type"`
	IsRead    bool   `json:"is_read"`
}

// Rental statuses
const (
	RentalStatusIncoming  = "incoming"
	RentalStatusBooked    = "booked"
	RentalStatusRented    = "rented"
	RentalStatusCompleted = "completed"
	RentalStatusOverdue   = "overdue"
	RentalStatusEmergency = "emergency"
	RentalStatusCancelled = "cancelled"
	RentalStatusArchive   = "archive"
)

// Payment states of a rental
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPartially = "partially"
	PaymentStatusPaid      = "paid"
)

// Payment row types and methods
const (
	PaymentTypeIncome  = "income"
	PaymentTypeExpense = "expense"

	PaymentMethodCash = "cash"
	PaymentMethodBank = "bank"
)

// History action types
const (
	HistoryActionStatusChange = "status_change"
	HistoryActionPayment      = "payment"
	HistoryActionComment      = "comment"
)

// Vehicle statuses and conditions
const (
	VehicleStatusAvailable   = "available"
	VehicleStatusRented      = "rented"
	VehicleStatusMaintenance = "maintenance"

	VehicleConditionNew    = "new"
	VehicleConditionGood   = "good"
	VehicleConditionBroken = "broken"
)

// Client ratings
const (
	ClientRatingTrusted   = "trusted"
	ClientRatingCaution   = "caution"
	ClientRatingBlacklist = "blacklist"
)

// User roles
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// Notification types
const (
	NotificationTypeOverdueProposal = "overdue_proposal"
)

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dest interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported column type for JSON scan")
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

// Value implements driver.Valuer
func (d DocumentList) Value() (driver.Value, error) { return jsonValue(d) }

// Scan implements sql.Scanner
func (d *DocumentList) Scan(value interface{}) error { return jsonScan(d, value) }

// Value implements driver.Valuer
func (c ContactList) Value() (driver.Value, error) { return jsonValue(c) }

// Scan implements sql.Scanner
func (c *ContactList) Scan(value interface{}) error { return jsonScan(c, value) }

// Value implements driver.Valuer
func (t TariffList) Value() (driver.Value, error) { return jsonValue(t) }

// Scan implements sql.Scanner
func (t *TariffList) Scan(value interface{}) error { return jsonScan(t, value) }
