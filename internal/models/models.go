// Package models defines the core data structures shared by the record
// stores and the HTTP layer: customers, users, auth sessions, receptions,
// tasks and messages.
package models

// Role identifies a user's position in the shop.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
	RoleTechnician   Role = "technician"
	RoleWarehouse    Role = "warehouse"
	RoleDetailing    Role = "detailing"
	RoleAccountant   Role = "accountant"
)

// ValidRole reports whether r is one of the six known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleReceptionist, RoleTechnician, RoleWarehouse, RoleDetailing, RoleAccountant:
		return true
	}
	return false
}

// Status is the workflow state of a reception or a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Customer is a shop customer. CustomerID is the human-facing sequential
// code; ID is the store-generated record identifier.
type Customer struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	// Password defaults to the phone number and follows it on phone changes.
	Password  string `json:"password"`
	CreatedAt string `json:"createdAt"`
}

// CustomerPatch is a partial customer update. Nil fields are left unchanged.
type CustomerPatch struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Permissions are the three independent capability flags carried by a user.
type Permissions struct {
	CanViewReceptions  bool `json:"canViewReceptions"`
	CanCreateTask      bool `json:"canCreateTask"`
	CanCreateReception bool `json:"canCreateReception"`
}

// AllPermissions is the permission set forced onto receptionists.
var AllPermissions = Permissions{
	CanViewReceptions:  true,
	CanCreateTask:      true,
	CanCreateReception: true,
}

// User is an account in the user directory.
type User struct {
	ID             string      `json:"id"`
	Username       string      `json:"username"`
	Name           string      `json:"name"`
	Role           Role        `json:"role"`
	JobDescription string      `json:"jobDescription,omitempty"`
	Active         bool        `json:"active"`
	Permissions    Permissions `json:"permissions"`
}

// UserPatch is a partial user update. Nil fields are left unchanged.
type UserPatch struct {
	Username       *string      `json:"username,omitempty"`
	Name           *string      `json:"name,omitempty"`
	Role           *Role        `json:"role,omitempty"`
	JobDescription *string      `json:"jobDescription,omitempty"`
	Active         *bool        `json:"active,omitempty"`
	Permissions    *Permissions `json:"permissions,omitempty"`
}

// Settings are the per-user UI preferences carried by the auth session.
type Settings struct {
	SidebarOpen bool `json:"sidebarOpen"`
}

// SettingsPatch is a partial settings update.
type SettingsPatch struct {
	SidebarOpen *bool `json:"sidebarOpen,omitempty"`
}

// Session is the single currently-logged-in user plus their UI preferences.
type Session struct {
	User     User     `json:"user"`
	Settings Settings `json:"settings"`
	// Token is the opaque bearer token identifying this session over HTTP.
	Token string `json:"token"`
}

// CustomerInfo is the customer block embedded in a reception.
type CustomerInfo struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	NationalID string `json:"nationalId"`
	Address    string `json:"address"`
}

// VehicleInfo is the vehicle block embedded in a reception.
type VehicleInfo struct {
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        string `json:"year"`
	Color       string `json:"color"`
	PlateNumber string `json:"plateNumber"`
	VIN         string `json:"vin"`
	Mileage     string `json:"mileage"`
}

// ServiceInfo describes the requested work on a reception.
type ServiceInfo struct {
	Description         string   `json:"description"`
	EstimatedCompletion string   `json:"estimatedCompletion,omitempty"`
	CustomerComplaints  []string `json:"customerComplaints"`
	CustomerRequests    []string `json:"customerRequests,omitempty"`
	// Signature is an inline encoded image, if the customer signed.
	Signature string `json:"signature,omitempty"`
}

// Reception is a vehicle intake record. Attachments are embedded encoded
// blobs, not references.
type Reception struct {
	ID           string       `json:"id"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	VehicleInfo  VehicleInfo  `json:"vehicleInfo"`
	ServiceInfo  ServiceInfo  `json:"serviceInfo"`
	Status       Status       `json:"status"`
	CreatedAt    string       `json:"createdAt"`
	Images       []string     `json:"images,omitempty"`
	Documents    []string     `json:"documents,omitempty"`
}

// ReceptionPatch is a partial reception update. The nested info objects are
// replaced whole when present; they are never merged field by field.
type ReceptionPatch struct {
	CustomerInfo *CustomerInfo `json:"customerInfo,omitempty"`
	VehicleInfo  *VehicleInfo  `json:"vehicleInfo,omitempty"`
	ServiceInfo  *ServiceInfo  `json:"serviceInfo,omitempty"`
	Status       *Status       `json:"status,omitempty"`
	Images       *[]string     `json:"images,omitempty"`
	Documents    *[]string     `json:"documents,omitempty"`
}

// Assignee is a denormalized snapshot of the user a task is assigned to.
// It is copied at creation time and not kept in sync with the directory.
type Assignee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VehicleRef is a denormalized snapshot of the vehicle a task concerns.
type VehicleRef struct {
	ID          string `json:"id"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	PlateNumber string `json:"plateNumber"`
}

// HistoryEntry is an immutable audit record appended to a task whenever its
// status or description changes.
type HistoryEntry struct {
	Date        string `json:"date"`
	Status      Status `json:"status"`
	Description string `json:"description"`
	UpdatedBy   string `json:"updatedBy"`
}

// Task is a work item referencing a reception and a user by snapshot.
type Task struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      Status         `json:"status"`
	Priority    Priority       `json:"priority"`
	AssignedTo  Assignee       `json:"assignedTo"`
	Vehicle     VehicleRef     `json:"vehicle"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
	DueDate     string         `json:"dueDate"`
	History     []HistoryEntry `json:"history"`
}

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *Status     `json:"status,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	AssignedTo  *Assignee   `json:"assignedTo,omitempty"`
	Vehicle     *VehicleRef `json:"vehicle,omitempty"`
	DueDate     *string     `json:"dueDate,omitempty"`
}

// Message is internal mail between two users.
type Message struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Content string `json:"content"`
	// CreatedAt is the human-facing date; SentAt is the Unix-millisecond
	// instant used for recency ordering.
	CreatedAt string `json:"createdAt"`
	SentAt    int64  `json:"sentAt"`
	Read      bool   `json:"read"`
}
