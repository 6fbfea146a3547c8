// Package seed loads the bundled sample records into a fresh store.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"support-desk/internal/apperrors"
	"support-desk/internal/domain/branch"
	"support-desk/internal/domain/customer"
	"support-desk/internal/domain/loan"
	"support-desk/internal/domain/user"
)

//go:embed data/sample.yaml
var sampleYAML []byte

type Repos struct {
	Users     user.Repository
	Customers customer.Repository
	Branches  branch.Repository
	Loans     loan.Repository
}

type Options struct {
	// No operator account is created when either field is empty.
	OperatorUsername string
	OperatorPassword string
}

type Result struct {
	Skipped   bool
	Users     int
	Branches  int
	Customers int
	Loans     int
}

type Document struct {
	Branches  []BranchDoc   `yaml:"branches"`
	Customers []CustomerDoc `yaml:"customers"`
	Loans     []LoanDoc     `yaml:"loans"`
}

type BranchDoc struct {
	SolID   *string `yaml:"solId"`
	Name    string  `yaml:"name"`
	Address string  `yaml:"address"`
}

type CustomerDoc struct {
	Key               string `yaml:"key"`
	Name              string `yaml:"name"`
	FatherHusbandName string `yaml:"fatherHusbandName"`
	DOB               string `yaml:"dob"`
	Gender            string `yaml:"gender"`
	PANNumber         string `yaml:"panNumber"`
	Phone             string `yaml:"phone"`
	Address           string `yaml:"address"`
	PinCode           string `yaml:"pinCode"`
	MaritalStatus     string `yaml:"maritalStatus"`
	AnnualIncome      int64  `yaml:"annualIncome"`
	Profession        string `yaml:"profession"`
	BankName          string `yaml:"bankName"`
	Religion          string `yaml:"religion"`
	IFSCCode          string `yaml:"ifscCode"`
	Qualification     string `yaml:"qualification"`
	AccountNumber     string `yaml:"accountNumber"`
}

// LoanDoc keeps decimals as strings so no precision is lost on the way in.
type LoanDoc struct {
	RupeekLoanID      string   `yaml:"rupeekLoanId"`
	Customer          string   `yaml:"customer"`
	LoanDate          string   `yaml:"loanDate"`
	SchemeName        string   `yaml:"schemeName"`
	TotalAmount       int64    `yaml:"totalAmount"`
	InterestRate      string   `yaml:"interestRate"`
	PerGramRate       string   `yaml:"perGramRate"`
	PenalInterestRate string   `yaml:"penalInterestRate"`
	RupeekGoldRate    string   `yaml:"rupeekGoldRate"`
	TenureMonths      int      `yaml:"tenureMonths"`
	DisbursalAmount   int64    `yaml:"disbursalAmount"`
	LTV               string   `yaml:"ltv"`
	ProcessingFee     int64    `yaml:"processingFee"`
	DisbursalCharges  int64    `yaml:"disbursalCharges"`
	TotalGrossWeight  string   `yaml:"totalGrossWeight"`
	TotalNetWeight    string   `yaml:"totalNetWeight"`
	TotalAdjustment   string   `yaml:"totalAdjustment"`
	JewelryItems      []string `yaml:"jewelryItems"`
	Status            string   `yaml:"status"`
	RejectionReasons  []string `yaml:"rejectionReasons"`
}

// Sample returns the bundled document.
func Sample() (*Document, error) { return Parse(sampleYAML) }

func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &doc, nil
}

// Load applies the bundled sample document.
func Load(ctx context.Context, r Repos, opts Options, log *zap.Logger) (Result, error) {
	doc, err := Sample()
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, r, doc, opts, log)
}

// Apply writes doc into the repositories. A store that already has a branch
// is treated as seeded and left alone.
func Apply(ctx context.Context, r Repos, doc *Document, opts Options, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var res Result

	if _, err := r.Branches.First(ctx); err == nil {
		log.Info("seed: store already populated, skipping")
		return Result{Skipped: true}, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return res, fmt.Errorf("seed: probe branches: %w", err)
	}

	if opts.OperatorUsername != "" && opts.OperatorPassword != "" {
		u, err := user.New(opts.OperatorUsername, opts.OperatorPassword)
		if err != nil {
			return res, fmt.Errorf("seed: operator: %w", err)
		}
		if err := r.Users.Create(ctx, u); err != nil {
			return res, fmt.Errorf("seed: operator: %w", err)
		}
		res.Users++
	}

	for _, bd := range doc.Branches {
		b := &branch.Branch{SolID: bd.SolID, Name: bd.Name, Address: bd.Address}
		if err := r.Branches.Create(ctx, b); err != nil {
			return res, fmt.Errorf("seed: branch %s: %w", bd.Name, err)
		}
		res.Branches++
	}

	customerIDs := make(map[string]string, len(doc.Customers))
	for _, cd := range doc.Customers {
		if _, dup := customerIDs[cd.Key]; dup || cd.Key == "" {
			return res, fmt.Errorf("seed: customer key %q empty or repeated", cd.Key)
		}
		c := cd.toEntity()
		if err := r.Customers.Create(ctx, c); err != nil {
			return res, fmt.Errorf("seed: customer %s: %w", cd.Key, err)
		}
		customerIDs[cd.Key] = c.ID
		res.Customers++
	}

	for _, ld := range doc.Loans {
		cid, ok := customerIDs[ld.Customer]
		if !ok {
			return res, fmt.Errorf("seed: loan %s: unknown customer key %q", ld.RupeekLoanID, ld.Customer)
		}
		l, err := ld.toEntity(cid)
		if err != nil {
			return res, fmt.Errorf("seed: loan %s: %w", ld.RupeekLoanID, err)
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return res, fmt.Errorf("seed: loan %s: %w", ld.RupeekLoanID, err)
		}
		res.Loans++
	}

	log.Info("seed: sample data loaded",
		zap.Int("users", res.Users),
		zap.Int("branches", res.Branches),
		zap.Int("customers", res.Customers),
		zap.Int("loans", res.Loans),
	)
	return res, nil
}

func (cd CustomerDoc) toEntity() *customer.Customer {
	return &customer.Customer{
		Name:              cd.Name,
		FatherHusbandName: cd.FatherHusbandName,
		DOB:               cd.DOB,
		Gender:            cd.Gender,
		PANNumber:         cd.PANNumber,
		Phone:             cd.Phone,
		Address:           cd.Address,
		PinCode:           cd.PinCode,
		MaritalStatus:     cd.MaritalStatus,
		AnnualIncome:      cd.AnnualIncome,
		Profession:        cd.Profession,
		BankName:          cd.BankName,
		Religion:          cd.Religion,
		IFSCCode:          cd.IFSCCode,
		Qualification:     cd.Qualification,
		AccountNumber:     cd.AccountNumber,
	}
}

func (ld LoanDoc) toEntity(customerID string) (*loan.Loan, error) {
	var firstErr error
	dec := func(field, v string) decimal.Decimal {
		d, err := decimal.NewFromString(v)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s %q: %w", field, v, err)
		}
		return d
	}

	l := &loan.Loan{
		RupeekLoanID:      ld.RupeekLoanID,
		CustomerID:        customerID,
		LoanDate:          ld.LoanDate,
		SchemeName:        ld.SchemeName,
		TotalAmount:       ld.TotalAmount,
		InterestRate:      dec("interestRate", ld.InterestRate),
		PerGramRate:       dec("perGramRate", ld.PerGramRate),
		PenalInterestRate: dec("penalInterestRate", ld.PenalInterestRate),
		RupeekGoldRate:    dec("rupeekGoldRate", ld.RupeekGoldRate),
		TenureMonths:      ld.TenureMonths,
		DisbursalAmount:   ld.DisbursalAmount,
		LTV:               dec("ltv", ld.LTV),
		ProcessingFee:     ld.ProcessingFee,
		DisbursalCharges:  ld.DisbursalCharges,
		TotalGrossWeight:  dec("totalGrossWeight", ld.TotalGrossWeight),
		TotalNetWeight:    dec("totalNetWeight", ld.TotalNetWeight),
		TotalAdjustment:   dec("totalAdjustment", ld.TotalAdjustment),
		JewelryItems:      ld.JewelryItems,
		Status:            loan.Status(ld.Status),
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if l.JewelryItems == nil {
		l.JewelryItems = []string{}
	}
	if l.Status == loan.StatusRejected {
		l.RejectionReasons = ld.RejectionReasons
	}
	return l, nil
}
