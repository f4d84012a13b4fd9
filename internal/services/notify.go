package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Notifier delivers password-reset codes out of band.
type Notifier interface {
	SendResetCode(identifierType, identifier, code string) error
}

// GatewayNotifier posts codes to an SMS/email gateway. When no gateway is
// configured it logs the code instead, which is the development behavior.
type GatewayNotifier struct {
	gatewayURL string
	apiKey     string
	client     *http.Client
}

// NewGatewayNotifier constructs a GatewayNotifier.
func NewGatewayNotifier(gatewayURL, apiKey string) *GatewayNotifier {
	return &GatewayNotifier{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type resetCodeMessage struct {
	Recipient string `json:"recipient"`
	Channel   string `json:"channel"`
	Message   string `json:"message"`
	APIKey    string `json:"api_key"`
}

// SendResetCode delivers a reset code to the given email or phone.
func (n *GatewayNotifier) SendResetCode(identifierType, identifier, code string) error {
	if n.gatewayURL == "" {
		log.Printf("[notify] password reset code for %s %s: %s", identifierType, identifier, code)
		return nil
	}

	msg := resetCodeMessage{
		Recipient: identifier,
		Channel:   identifierType,
		Message:   fmt.Sprintf("Your Shopwice password reset code is %s. It expires in 15 minutes.", code),
		APIKey:    n.apiKey,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := n.client.Post(n.gatewayURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify gateway returned status %d", resp.StatusCode)
	}
	return nil
}
