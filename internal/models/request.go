package models

import "time"

const (
	StatusPending = "pending"

	UserStatusApproved = "approved"
	UserStatusRejected = "rejected"
)

// BloodRequest represents one row of the 'Requests' table.
// JSON keys follow the column names so clients see the raw row shape.
type BloodRequest struct {
	RequestID        uint64  `gorm:"column:request_id;primaryKey;autoIncrement" json:"request_id"`
	PatientName      string  `gorm:"size:100" json:"patient_name"`
	NationalID       string  `gorm:"size:50" json:"national_id"`
	Age              int     `json:"age"`
	Gender           string  `gorm:"size:10" json:"gender"`
	BloodType        string  `gorm:"size:5" json:"blood_type"`
	BagsNeeded       int     `json:"bags_needed"`
	Reason           string  `gorm:"type:text" json:"reason"`
	HospitalName     string  `gorm:"size:150" json:"hospital_name"`
	Branch           string  `gorm:"size:100" json:"branch"`
	MedicalReportURL *string `gorm:"size:255" json:"medical_report_url"` // path returned by /api/upload, nullable
	Relation         string  `gorm:"size:50" json:"relation"`
	PhoneNumber      string  `gorm:"size:20" json:"phone_number"`
	DeliveryMethod   string  `gorm:"size:30" json:"delivery_method"`
	Address          string  `gorm:"type:text" json:"address"`
	PaymentMethod    string  `gorm:"size:30" json:"payment_method"`
	UserID           *string `gorm:"size:64;index" json:"user_id"`

	// Status is the backend workflow state; UserStatus is the approval decision.
	Status     string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	UserStatus *string   `gorm:"size:20;check:,user_status IN ('approved','rejected')" json:"user_status"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (BloodRequest) TableName() string {
	return "Requests"
}

// CreateRequestInput is the POST /api/requests body. Scalars are coerced
// to the column type, so "age": "34" and "user_id": 7 are both accepted.
type CreateRequestInput struct {
	PatientName      FlexString  `json:"patient_name"`
	NationalID       FlexString  `json:"national_id"`
	Age              FlexInt     `json:"age"`
	Gender           FlexString  `json:"gender"`
	BloodType        FlexString  `json:"blood_type"`
	BagsNeeded       FlexInt     `json:"bags_needed"`
	Reason           FlexString  `json:"reason"`
	HospitalName     FlexString  `json:"hospital_name"`
	Branch           FlexString  `json:"branch"`
	MedicalReportURL *FlexString `json:"medical_report_url"`
	Relation         FlexString  `json:"relation"`
	PhoneNumber      FlexString  `json:"phone_number"`
	DeliveryMethod   FlexString  `json:"delivery_method"`
	Address          FlexString  `json:"address"`
	PaymentMethod    FlexString  `json:"payment_method"`
	UserID           *FlexString `json:"user_id"`
}

// ToModel builds the row to insert. request_id, status and created_at are
// left for storage to fill in.
func (in CreateRequestInput) ToModel() BloodRequest {
	return BloodRequest{
		PatientName:      string(in.PatientName),
		NationalID:       string(in.NationalID),
		Age:              int(in.Age),
		Gender:           string(in.Gender),
		BloodType:        string(in.BloodType),
		BagsNeeded:       int(in.BagsNeeded),
		Reason:           string(in.Reason),
		HospitalName:     string(in.HospitalName),
		Branch:           string(in.Branch),
		MedicalReportURL: in.MedicalReportURL.Ptr(),
		Relation:         string(in.Relation),
		PhoneNumber:      string(in.PhoneNumber),
		DeliveryMethod:   string(in.DeliveryMethod),
		Address:          string(in.Address),
		PaymentMethod:    string(in.PaymentMethod),
		UserID:           in.UserID.Ptr(),
	}
}

type UpdateStatusInput struct {
	UserStatus string `json:"user_status"`
}

// ValidUserStatus reports whether s is one of approved/rejected.
func ValidUserStatus(s string) bool {
	return s == UserStatusApproved || s == UserStatusRejected
}
