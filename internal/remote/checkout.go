package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stressless/internal/engine"
)

// CheckoutClient asks the payment backend for a hosted checkout page.
type CheckoutClient struct {
	URL  string
	HTTP *http.Client
}

func NewCheckoutClient(url string, timeout time.Duration) *CheckoutClient {
	return &CheckoutClient{URL: url, HTTP: NewHTTPClient(timeout)}
}

type checkoutRequest struct {
	PriceID    string `json:"priceId"`
	UserID     string `json:"userId"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

// CreateSession returns the redirect URL for a plan purchase.
func (c *CheckoutClient) CreateSession(ctx context.Context, plan engine.Plan, userID, appURL string) (string, error) {
	if !plan.Paid() {
		return "", engine.InputError{Field: "plan", Reason: fmt.Sprintf("%s has no checkout", plan.ID)}
	}
	if strings.TrimSpace(userID) == "" {
		return "", engine.InputError{Field: "identity", Reason: "an account identity is required to subscribe"}
	}
	appURL = strings.TrimRight(appURL, "/")

	var out checkoutResponse
	err := doJSON(ctx, c.HTTP, http.MethodPost, c.URL, nil, checkoutRequest{
		PriceID:    plan.PriceID,
		UserID:     userID,
		SuccessURL: appURL + "/success",
		CancelURL:  appURL + "/contact",
	}, &out)
	if err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: checkout response has no url", engine.ErrTransientRemote)
	}
	return out.URL, nil
}
