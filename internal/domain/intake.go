package domain

import (
	"strings"
	"time"
)

// Intake is a publicly submitted record that only an administrator may move through
// its status lifecycle or delete.
type Intake interface {
	Kind() string
	RecordID() uint64
	Contact() (name, email, phone string)
	Sanitize(clean, cleanText func(string) string)
	Validate() error
	// Init clears server-owned fields and sets the initial status.
	Init()
	AllowsStatus(status string) bool
	Submitted() time.Time
}

type CustomRequestStatus string

const (
	RequestNew       CustomRequestStatus = "new"
	RequestReviewing CustomRequestStatus = "reviewing"
	RequestQuoted    CustomRequestStatus = "quoted"
	RequestAccepted  CustomRequestStatus = "accepted"
	RequestRejected  CustomRequestStatus = "rejected"
	RequestCompleted CustomRequestStatus = "completed"
)

type CustomRequest struct {
	ID           uint64              `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string              `json:"name" gorm:"size:120;not null"`
	Email        string              `json:"email" gorm:"size:254;not null"`
	Phone        string              `json:"phone,omitempty" gorm:"size:20"`
	Description  string              `json:"description" gorm:"type:text;not null"`
	Material     string              `json:"material,omitempty" gorm:"size:60"`
	Quantity     int                 `json:"quantity" gorm:"not null;default:1"`
	ReferenceURL string              `json:"referenceUrl,omitempty" gorm:"size:500"`
	Status       CustomRequestStatus `json:"status" gorm:"type:enum('new','reviewing','quoted','accepted','rejected','completed');default:'new'"`
	CreatedAt    time.Time           `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time           `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (r *CustomRequest) Kind() string         { return "custom_request" }
func (r *CustomRequest) RecordID() uint64     { return r.ID }
func (r *CustomRequest) Submitted() time.Time { return r.CreatedAt }

func (r *CustomRequest) Init() {
	r.ID = 0
	r.Status = RequestNew
	r.CreatedAt = time.Time{}
	r.UpdatedAt = time.Time{}
}

func (r *CustomRequest) Contact() (string, string, string) {
	return r.Name, r.Email, r.Phone
}

func (r *CustomRequest) Sanitize(clean, cleanText func(string) string) {
	r.Name = clean(r.Name)
	r.Email = strings.ToLower(clean(r.Email))
	r.Phone = strings.ReplaceAll(clean(r.Phone), " ", "")
	r.Description = cleanText(r.Description)
	r.Material = clean(r.Material)
	r.ReferenceURL = clean(r.ReferenceURL)
}

func (r *CustomRequest) Validate() error {
	if r.Description == "" {
		return Invalid("description is required")
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	if r.Quantity < 1 || r.Quantity > 10000 {
		return Invalid("quantity must be between 1 and 10000")
	}
	return nil
}

func (r *CustomRequest) AllowsStatus(status string) bool {
	switch CustomRequestStatus(status) {
	case RequestNew, RequestReviewing, RequestQuoted, RequestAccepted, RequestRejected, RequestCompleted:
		return true
	}
	return false
}

type ContactStatus string

const (
	ContactUnread   ContactStatus = "unread"
	ContactRead     ContactStatus = "read"
	ContactReplied  ContactStatus = "replied"
	ContactResolved ContactStatus = "resolved"
)

type ContactSubmission struct {
	ID        uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string        `json:"name" gorm:"size:120;not null"`
	Email     string        `json:"email" gorm:"size:254;not null"`
	Phone     string        `json:"phone,omitempty" gorm:"size:20"`
	Subject   string        `json:"subject,omitempty" gorm:"size:200"`
	Message   string        `json:"message" gorm:"type:text;not null"`
	Status    ContactStatus `json:"status" gorm:"type:enum('unread','read','replied','resolved');default:'unread'"`
	CreatedAt time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (c *ContactSubmission) Kind() string         { return "contact" }
func (c *ContactSubmission) RecordID() uint64     { return c.ID }
func (c *ContactSubmission) Submitted() time.Time { return c.CreatedAt }

func (c *ContactSubmission) Init() {
	c.ID = 0
	c.Status = ContactUnread
	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}
}

func (c *ContactSubmission) Contact() (string, string, string) {
	return c.Name, c.Email, c.Phone
}

func (c *ContactSubmission) Sanitize(clean, cleanText func(string) string) {
	c.Name = clean(c.Name)
	c.Email = strings.ToLower(clean(c.Email))
	c.Phone = strings.ReplaceAll(clean(c.Phone), " ", "")
	c.Subject = clean(c.Subject)
	c.Message = cleanText(c.Message)
}

func (c *ContactSubmission) Validate() error {
	if c.Message == "" {
		return Invalid("message is required")
	}
	return nil
}

func (c *ContactSubmission) AllowsStatus(status string) bool {
	switch ContactStatus(status) {
	case ContactUnread, ContactRead, ContactReplied, ContactResolved:
		return true
	}
	return false
}

type CallStatus string

const (
	CallPending   CallStatus = "pending"
	CallConfirmed CallStatus = "confirmed"
	CallCompleted CallStatus = "completed"
	CallCancelled CallStatus = "cancelled"
)

type BookedCall struct {
	ID            uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string     `json:"name" gorm:"size:120;not null"`
	Email         string     `json:"email" gorm:"size:254;not null"`
	Phone         string     `json:"phone" gorm:"size:20;not null"`
	PreferredDate string     `json:"preferredDate" gorm:"size:10;not null"`
	TimeSlot      string     `json:"timeSlot" gorm:"size:40;not null"`
	Topic         string     `json:"topic,omitempty" gorm:"type:text"`
	Status        CallStatus `json:"status" gorm:"type:enum('pending','confirmed','completed','cancelled');default:'pending'"`
	CreatedAt     time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (b *BookedCall) Kind() string         { return "booked_call" }
func (b *BookedCall) RecordID() uint64     { return b.ID }
func (b *BookedCall) Submitted() time.Time { return b.CreatedAt }

func (b *BookedCall) Init() {
	b.ID = 0
	b.Status = CallPending
	b.CreatedAt = time.Time{}
	b.UpdatedAt = time.Time{}
}

func (b *BookedCall) Contact() (string, string, string) {
	return b.Name, b.Email, b.Phone
}

func (b *BookedCall) Sanitize(clean, cleanText func(string) string) {
	b.Name = clean(b.Name)
	b.Email = strings.ToLower(clean(b.Email))
	b.Phone = strings.ReplaceAll(clean(b.Phone), " ", "")
	b.PreferredDate = clean(b.PreferredDate)
	b.TimeSlot = clean(b.TimeSlot)
	b.Topic = cleanText(b.Topic)
}

func (b *BookedCall) Validate() error {
	if b.Phone == "" {
		return Invalid("phone is required")
	}
	if _, err := time.Parse(time.DateOnly, b.PreferredDate); err != nil {
		return Invalid("preferredDate must be YYYY-MM-DD")
	}
	if b.TimeSlot == "" {
		return Invalid("timeSlot is required")
	}
	return nil
}

func (b *BookedCall) AllowsStatus(status string) bool {
	switch CallStatus(status) {
	case CallPending, CallConfirmed, CallCompleted, CallCancelled:
		return true
	}
	return false
}
