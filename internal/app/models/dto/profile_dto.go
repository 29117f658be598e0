package dto

import "github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"

// StudentRequest creates or updates the caller's cadet profile
type StudentRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Branch             string `json:"branch"`
	Year               int    `json:"year" binding:"omitempty,min=1,max=6"`
	RollNo             string `json:"rollNo"`
	Address            string `json:"address"`
	PhoneNumber        string `json:"phoneNumber"`
	ParentsPhoneNumber string `json:"parentsPhoneNumber"`
	AadhaarNumber      string `json:"aadhaarNumber"`
	PanNumber          string `json:"panNumber"`
	AccountNumber      string `json:"accountNumber"`
}

// NccDetailRequest creates or updates one NCC service record
type NccDetailRequest struct {
	NccWing          string `json:"nccWing"`
	RegimentalNumber string `json:"regimentalNumber"`
	EnrollmentDate   string `json:"enrollmentDate"`
	CadetRank        string `json:"cadetRank"`
	Certification    string `json:"myNccCertification" binding:"omitempty,oneof=N/D A B C Other"`
	CampsAttended    string `json:"campsAttended"`
	AwardsReceived   string `json:"awardsReceivedInNationalCamp"`
}

// ExperienceRequest creates or updates one internship/placement record
type ExperienceRequest struct {
	Kind        string `json:"experience" binding:"required,oneof=internship placement"`
	CompanyName string `json:"companyName" binding:"required"`
	Role        string `json:"role"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// ProfileOverviewResponse bundles everything the profile editor shows. The
// record lists are always complete; clients replace, never merge.
type ProfileOverviewResponse struct {
	Student     *models.Student     `json:"student"`
	NccDetails  []models.NccDetail  `json:"nccDetails"`
	Experiences []models.Experience `json:"experiences"`
}
