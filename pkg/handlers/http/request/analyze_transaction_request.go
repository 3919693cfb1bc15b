package request

import (
	"fmt"
	"strings"
)

type AnalyzeTransactionRequest struct {
	Transaction string `json:"transaction"`
}

func (r *AnalyzeTransactionRequest) Validate() error {
	if strings.TrimSpace(r.Transaction) == "" {
		return fmt.Errorf("transaction is required")
	}
	return nil
}
