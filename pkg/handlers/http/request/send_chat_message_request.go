package request

import (
	"fmt"
	"strings"
)

type SendChatMessageRequest struct {
	Content string `json:"content"`
}

func (r *SendChatMessageRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}
