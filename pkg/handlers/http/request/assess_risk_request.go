package request

import (
	"fmt"

	"github.com/NeuralTrust/FraudShield/pkg/app/prompt"
)

type AssessRiskRequest struct {
	BusinessType  string `json:"business_type"`
	MonthlyVolume *int64 `json:"monthly_volume"`
	CountryRisk   string `json:"country_risk"`
}

func (r *AssessRiskRequest) Validate() error {
	if r.MonthlyVolume == nil {
		return fmt.Errorf("monthly_volume is required")
	}
	return r.Profile().Validate()
}

// Profile treats a missing monthly_volume as zero.
func (r *AssessRiskRequest) Profile() prompt.CustomerProfile {
	var volume int64
	if r.MonthlyVolume != nil {
		volume = *r.MonthlyVolume
	}
	return prompt.CustomerProfile{
		BusinessType:  prompt.BusinessType(r.BusinessType),
		MonthlyVolume: volume,
		CountryRisk:   prompt.CountryRisk(r.CountryRisk),
	}
}
