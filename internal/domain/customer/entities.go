package customer

import (
	"fmt"

	"support-desk/internal/apperrors"
)

var ErrNotFound = fmt.Errorf("customer %w", apperrors.ErrNotFound)

// Table: customers. KYC attributes are captured once at onboarding.
type Customer struct {
	ID                string `gorm:"primaryKey;size:36" json:"id"`
	Name              string `gorm:"not null" json:"name"`
	FatherHusbandName string `gorm:"not null" json:"fatherHusbandName"`
	DOB               string `gorm:"column:dob;size:32;not null" json:"dob"`
	Gender            string `gorm:"size:16;not null" json:"gender"`
	PANNumber         string `gorm:"column:pan_number;size:10;not null" json:"panNumber"`
	Phone             string `gorm:"size:16;not null" json:"phone"`
	Address           string `gorm:"type:text;not null" json:"address"`
	PinCode           string `gorm:"size:8;not null" json:"pinCode"`
	MaritalStatus     string `gorm:"size:16;not null" json:"maritalStatus"`
	AnnualIncome      int64  `gorm:"not null" json:"annualIncome"`
	Profession        string `gorm:"not null" json:"profession"`
	BankName          string `gorm:"not null" json:"bankName"`
	Religion          string `gorm:"not null" json:"religion"`
	IFSCCode          string `gorm:"column:ifsc_code;size:11;not null" json:"ifscCode"`
	Qualification     string `gorm:"not null" json:"qualification"`
	AccountNumber     string `gorm:"size:32;not null" json:"accountNumber"`
}

func (Customer) TableName() string { return "customers" }
