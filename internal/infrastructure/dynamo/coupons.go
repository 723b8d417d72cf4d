package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/promo-coupon-api/internal/domain"
)

// CouponRepo provides typed DynamoDB operations for the coupons table.
// The companion phone_claims table carries the per-phone uniqueness
// constraint enforced on first registration.
type CouponRepo struct {
	client     *dynamodb.Client
	tableName  string
	claimTable string
}

func NewCouponRepo(client *dynamodb.Client, tableName, claimTable string) *CouponRepo {
	return &CouponRepo{client: client, tableName: tableName, claimTable: claimTable}
}

func (r *CouponRepo) Get(ctx context.Context, couponUUID string) (*domain.Coupon, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldCouponUUID, couponUUID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("coupon not found: %w", domain.ErrNotFound)
	}
	var c domain.Coupon
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPhone returns every coupon owned by the phone, oldest first.
// The phone-index GSI is keyed phone/created_at, so query order is
// insertion order.
func (r *CouponRepo) ListByPhone(ctx context.Context, phone string) ([]domain.Coupon, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("phone-index"),
		KeyConditionExpression: aws.String("#p = :p"),
		ExpressionAttributeNames: map[string]string{
			"#p": fieldPhone,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberS{Value: phone},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	var coupons []domain.Coupon
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// CreateFirst inserts the coupon and the phone-claim marker in a single
// transaction. The claim put is conditioned on the phone being unclaimed,
// so two concurrent first-time registrations for the same phone cannot
// both succeed; the loser gets domain.ErrConflict.
func (r *CouponRepo) CreateFirst(ctx context.Context, c *domain.Coupon) error {
	couponItem, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal coupon: %w", err)
	}
	claimItem, err := attributevalue.MarshalMap(&domain.PhoneClaim{
		Phone:      c.Phone,
		CouponUUID: c.CouponUUID,
		CreatedAt:  c.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal phone claim: %w", err)
	}
	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName: aws.String(r.tableName),
					Item:      couponItem,
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.claimTable),
					Item:                claimItem,
					ConditionExpression: aws.String("attribute_not_exists(#p)"),
					ExpressionAttributeNames: map[string]string{
						"#p": fieldPhone,
					},
				},
			},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for _, reason := range tce.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return fmt.Errorf("phone already registered: %w", domain.ErrConflict)
				}
			}
		}
		return err
	}
	return nil
}

// MarkUsed flips the coupon to USED, guarded on it still being NOT_USED.
// The condition makes redemption a single atomic round trip: of two
// concurrent attempts, exactly one wins and the other gets
// domain.ErrConflict.
func (r *CouponRepo) MarkUsed(ctx context.Context, couponUUID string, usedAt time.Time) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey(fieldCouponUUID, couponUUID),
		UpdateExpression:    aws.String("SET #s = :used, #u = :at"),
		ConditionExpression: aws.String("#s = :notused"),
		ExpressionAttributeNames: map[string]string{
			"#s": fieldStatus,
			"#u": fieldUsedAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":used":    &types.AttributeValueMemberS{Value: domain.CouponUsed},
			":notused": &types.AttributeValueMemberS{Value: domain.CouponNotUsed},
			":at":      &types.AttributeValueMemberS{Value: usedAt.UTC().Format(time.RFC3339)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("coupon no longer redeemable: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

// Scan returns every coupon row for the admin lead listing.
func (r *CouponRepo) Scan(ctx context.Context) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Coupon
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		coupons = append(coupons, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return coupons, nil
}
