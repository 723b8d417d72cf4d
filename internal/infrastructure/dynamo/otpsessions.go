package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/promo-coupon-api/internal/domain"
)

// OtpSessionRepo manages pending phone verifications.
// PK: phone — Put is an upsert, so a new request for the same phone
// replaces the previous session (last writer wins, one live code per phone).
// expires_at is registered as the table's TTL attribute for storage
// hygiene; correctness still relies on the lazy expiry check at read time.
type OtpSessionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOtpSessionRepo(client *dynamodb.Client, tableName string) *OtpSessionRepo {
	return &OtpSessionRepo{client: client, tableName: tableName}
}

func (r *OtpSessionRepo) Put(ctx context.Context, s *domain.OtpSession) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal otp session: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *OtpSessionRepo) Get(ctx context.Context, phone string) (*domain.OtpSession, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldPhone, phone),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("otp session not found: %w", domain.ErrNotFound)
	}
	var s domain.OtpSession
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *OtpSessionRepo) Delete(ctx context.Context, phone string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldPhone, phone),
	})
	return err
}
