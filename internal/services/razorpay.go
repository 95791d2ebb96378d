package services

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// RazorpayService brokers payment-order creation with the Razorpay gateway.
// Capture and settlement stay entirely on the gateway side; we only create
// the order reference and verify the checkout callback signature.
type RazorpayService struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpayService(keyID, keySecret string) (*RazorpayService, error) {
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay credentials not configured")
	}
	return &RazorpayService{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}, nil
}

// CreateOrder creates a Razorpay order for the given amount in rupees and
// returns the gateway order id. Razorpay wants the amount in paise.
func (s *RazorpayService) CreateOrder(amountRupees float64, receipt, userUID, email string) (string, error) {
	amountPaise := int64(amountRupees * 100)
	if amountPaise <= 0 {
		return "", errors.New("order amount must be positive")
	}

	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
		"notes": map[string]interface{}{
			"userId": userUID,
			"email":  email,
		},
	}

	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", errors.New("razorpay order response missing id")
	}
	return orderID, nil
}

// VerifyPaymentSignature checks the HMAC signature Razorpay checkout returns
// after a successful payment.
func (s *RazorpayService) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, s.keySecret)
}
