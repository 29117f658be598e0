package models

import "time"

// Student defines the cadet profile model based on the 'students' table.
// Each user account maintains at most one.
type Student struct {
	StudentID          int64     `json:"studentId" db:"student_id" example:"1"`
	UserID             int64     `json:"userId" db:"user_id" example:"5"`
	Name               string    `json:"name" db:"name" example:"Arjun Kumar"`
	Email              string    `json:"email" db:"email" example:"cadet@nccairwing.in"`
	Branch             string    `json:"branch" db:"branch" example:"CSE"`
	Year               int       `json:"year" db:"year" example:"3"`
	RollNo             string    `json:"rollNo" db:"roll_no" example:"21CS123"`
	Address            string    `json:"address" db:"address"`
	PhoneNumber        string    `json:"phoneNumber" db:"phone_number"`
	ParentsPhoneNumber string    `json:"parentsPhoneNumber" db:"parents_phone_number"`
	AadhaarNumber      string    `json:"aadhaarNumber" db:"aadhaar_number"`
	PanNumber          string    `json:"panNumber" db:"pan_number"`
	AccountNumber      string    `json:"accountNumber" db:"account_number"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}

// NCC certification levels.
const (
	CertificationNone  = "N/D"
	CertificationA     = "A"
	CertificationB     = "B"
	CertificationC     = "C"
	CertificationOther = "Other"
)

// NccDetail defines one NCC service record based on the 'ncc_details' table
type NccDetail struct {
	NccID            int64     `json:"nccId" db:"ncc_id" example:"1"`
	StudentID        int64     `json:"studentId" db:"student_id" example:"1"`
	NccWing          string    `json:"nccWing" db:"ncc_wing" example:"Air"`
	RegimentalNumber string    `json:"regimentalNumber" db:"regimental_number" example:"TN20SDA123456"`
	EnrollmentDate   string    `json:"enrollmentDate" db:"enrollment_date" example:"2022-08-01"`
	CadetRank        string    `json:"cadetRank" db:"cadet_rank" example:"Cadet Sergeant"`
	Certification    string    `json:"myNccCertification" db:"my_ncc_certification" example:"B"`
	CampsAttended    string    `json:"campsAttended" db:"camps_attended"`
	AwardsReceived   string    `json:"awardsReceivedInNationalCamp" db:"awards_received_in_national_camp"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// Experience kinds.
const (
	ExperienceInternship = "internship"
	ExperiencePlacement  = "placement"
)

// Experience defines one internship or placement record based on the
// 'placements_internships' table
type Experience struct {
	ExperienceID int64     `json:"experienceId" db:"experience_id" example:"1"`
	StudentID    int64     `json:"studentId" db:"student_id" example:"1"`
	Kind         string    `json:"experience" db:"experience" example:"internship"`
	CompanyName  string    `json:"companyName" db:"company_name" example:"HAL"`
	Role         string    `json:"role" db:"role" example:"Avionics Intern"`
	StartDate    string    `json:"startDate" db:"start_date" example:"2024-05-01"`
	EndDate      string    `json:"endDate" db:"end_date" example:"2024-07-31"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// NccDetailWithStudent is an NCC record joined with its owner's name and
// email, used by the admin console and the Excel export.
type NccDetailWithStudent struct {
	NccDetail
	StudentName  string `json:"studentName" db:"student_name"`
	StudentEmail string `json:"studentEmail" db:"student_email"`
}

// ExperienceWithStudent is an experience record joined with its owner.
type ExperienceWithStudent struct {
	Experience
	StudentName  string `json:"studentName" db:"student_name"`
	StudentEmail string `json:"studentEmail" db:"student_email"`
}
