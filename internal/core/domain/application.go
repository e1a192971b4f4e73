package domain

import (
	"errors"
	"time"
)

// ApplicationStatus represents the lifecycle state of a worker application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

var ErrPendingApplication = errors.New("a pending application already exists")
var ErrApplicationNotFound = errors.New("application not found")
var ErrApplicationResolved = errors.New("application already resolved")
var ErrInvalidDecision = errors.New("invalid review decision")
var ErrInvalidTrade = errors.New("invalid trade")
var ErrDocumentRequired = errors.New("supporting document is required")

// Terminal reports whether no further transition is defined from s.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// ValidDecision reports whether s is an allowed review outcome.
func ValidDecision(s ApplicationStatus) bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// Document holds the stored metadata of the attached supporting file.
type Document struct {
	URL      string `json:"url" bson:"url"`
	Key      string `json:"key" bson:"key"`
	FileName string `json:"file_name" bson:"file_name"`
	Size     int64  `json:"size" bson:"size"`
}

// Application is a request by a user to be promoted to a worker trade.
// Applicant name and email are snapshotted at submission time.
type Application struct {
	ID              string            `json:"id" bson:"_id,omitempty"`
	ApplicantID     string            `json:"applicant_id" bson:"applicant_id"`
	FullName        string            `json:"fullname" bson:"fullname"`
	Email           string            `json:"email" bson:"email"`
	Document        Document          `json:"document" bson:"document"`
	Trade           string            `json:"trade" bson:"trade"`
	Status          ApplicationStatus `json:"status" bson:"status"`
	Feedback        string            `json:"feedback" bson:"feedback"`
	ReviewedBy      string            `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	CreatedAt       time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" bson:"updated_at"`
}
