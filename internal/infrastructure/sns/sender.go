package sns

import (
	"context"
	"errors"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/smithy-go"
	"github.com/promo-coupon-api/internal/config"
)

// ErrDeliveryBlocked reports that the SMS was rejected because the
// destination is unreachable from this account (SNS SMS sandbox, opted-out
// number). Callers may fall back to surfacing the code directly instead of
// failing the request.
var ErrDeliveryBlocked = errors.New("sms delivery blocked")

// SMSSender sends SMS messages via AWS SNS.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type sender struct {
	client *sns.Client
}

func NewSender(cfg *config.Config) (SMSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &sender{client: sns.NewFromConfig(awsCfg)}, nil
}

func (s *sender) SendSMS(ctx context.Context, to, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &to,
		Message:     &message,
	})
	if err != nil && isBlocked(err) {
		return errors.Join(ErrDeliveryBlocked, err)
	}
	return err
}

// isBlocked classifies publish failures caused by account-level delivery
// restrictions rather than a transient fault. AuthorizationError is what
// the SMS sandbox returns for unverified destinations; OptedOut covers
// recipients who texted STOP.
func isBlocked(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "AuthorizationError", "OptedOut":
		return true
	}
	return false
}

// NewDisabledSender returns a sender that reports every message as blocked.
// Wired when SNS credentials are absent so local setups fall back to
// surfacing codes in the response instead of failing registration.
func NewDisabledSender() SMSSender { return disabledSender{} }

type disabledSender struct{}

func (disabledSender) SendSMS(ctx context.Context, to, message string) error {
	return ErrDeliveryBlocked
}
