package prompt

import (
	"errors"
	"fmt"
	"strings"
)

const roleTaggedTemplate = "<|start_of_role|>system<|end_of_role|>%s<|end_of_text|>\n" +
	"<|start_of_role|>assistant<|end_of_role|>%s"

const transactionTemplate = "Analyze the following financial transaction and provide a risk score between 0 and 1, \n" +
	"    where 0 is lowest risk and 1 is highest risk. Only return the numerical score.\n" +
	"    Transaction: %s"

const customerProfileTemplate = "Calculate a risk score between 0 and 1 for the following customer profile:\n" +
	"            Business Type: %s\n" +
	"            Monthly Transaction Volume: $%d\n" +
	"            Country Risk Level: %s\n" +
	"            Only return the numerical score."

const MaxMonthlyVolume = 1_000_000

type BusinessType string

const (
	BusinessIndividual    BusinessType = "Individual"
	BusinessSmallBusiness BusinessType = "Small Business"
	BusinessCorporation   BusinessType = "Corporation"
)

type CountryRisk string

const (
	CountryRiskLow    CountryRisk = "Low"
	CountryRiskMedium CountryRisk = "Medium"
	CountryRiskHigh   CountryRisk = "High"
)

var (
	ErrEmptyTransaction    = errors.New("transaction text is empty")
	ErrInvalidBusinessType = errors.New("business_type must be one of Individual, Small Business, Corporation")
	ErrInvalidCountryRisk  = errors.New("country_risk must be one of Low, Medium, High")
	ErrInvalidVolume       = fmt.Errorf("monthly_volume must be between 0 and %d", MaxMonthlyVolume)
)

// CustomerProfile describes a customer whose overall risk is assessed.
type CustomerProfile struct {
	BusinessType  BusinessType `json:"business_type"`
	MonthlyVolume int64        `json:"monthly_volume"`
	CountryRisk   CountryRisk  `json:"country_risk"`
}

func (p CustomerProfile) Validate() error {
	switch p.BusinessType {
	case BusinessIndividual, BusinessSmallBusiness, BusinessCorporation:
	default:
		return ErrInvalidBusinessType
	}
	if p.MonthlyVolume < 0 || p.MonthlyVolume > MaxMonthlyVolume {
		return ErrInvalidVolume
	}
	switch p.CountryRisk {
	case CountryRiskLow, CountryRiskMedium, CountryRiskHigh:
	default:
		return ErrInvalidCountryRisk
	}
	return nil
}

// RoleTagged wraps prompt in the chat markup the instruct models expect,
// with system as the system turn. Neither argument is escaped.
func RoleTagged(system, prompt string) string {
	return fmt.Sprintf(roleTaggedTemplate, system, prompt)
}

// Transaction asks for a bare numeric score for a free-text transaction.
func Transaction(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyTransaction
	}
	return fmt.Sprintf(transactionTemplate, text), nil
}

func Customer(profile CustomerProfile) (string, error) {
	if err := profile.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf(customerProfileTemplate, profile.BusinessType, profile.MonthlyVolume, profile.CountryRisk), nil
}
