package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"libroconecta/internal/domain/entities"
	"libroconecta/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultTransactionsTableName = "payment_transactions"
	transactionsReferenceIndex   = "reference-index"
	transactionsExternalPayIndex = "external_payment_id-index"
	transactionsBuyerIDIndex     = "buyer_id-index"
)

type paymentTransactionItem struct {
	ID                string  `dynamodbav:"id"`
	Reference         string  `dynamodbav:"reference"`
	ExternalPaymentID string  `dynamodbav:"external_payment_id,omitempty"`
	Status            string  `dynamodbav:"status"`
	StatusRank        int     `dynamodbav:"status_rank"`
	Amount            float64 `dynamodbav:"amount"`
	Currency          string  `dynamodbav:"currency"`
	ItemID            string  `dynamodbav:"item_id"`
	BuyerID           string  `dynamodbav:"buyer_id"`
	SellerID          string  `dynamodbav:"seller_id"`
	UnknownOrigin     bool    `dynamodbav:"unknown_origin,omitempty"`
	GatewayPayloadRaw string  `dynamodbav:"gateway_payload_raw,omitempty"`
	CreatedAt         string  `dynamodbav:"created_at"`
	UpdatedAt         string  `dynamodbav:"updated_at"`
}

// PaymentTransactionDynamoRepository persists PaymentTransaction entities in
// DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: reference-index (PK: reference)
//   - GSI: external_payment_id-index (PK: external_payment_id)
//   - GSI: buyer_id-index (PK: buyer_id)

type PaymentTransactionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentTransactionRepository = (*PaymentTransactionDynamoRepository)(nil)

func NewPaymentTransactionDynamoRepository(ddb *dynamodb.Client) *PaymentTransactionDynamoRepository {
	return &PaymentTransactionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName),
	}
}

func (r *PaymentTransactionDynamoRepository) Create(ctx context.Context, tx entities.PaymentTransaction) (entities.PaymentTransaction, error) {
	it := toPaymentTransactionItem(tx)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.PaymentTransaction{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	return tx, nil
}

func (r *PaymentTransactionDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentTransaction, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentTransaction{}, nil
	}

	var it paymentTransactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentTransaction{}, err
	}
	return fromPaymentTransactionItem(it), nil
}

func (r *PaymentTransactionDynamoRepository) GetByReference(ctx context.Context, reference string) (entities.PaymentTransaction, error) {
	return r.queryOne(ctx, transactionsReferenceIndex, "reference", reference)
}

func (r *PaymentTransactionDynamoRepository) GetByExternalPaymentID(ctx context.Context, externalPaymentID string) (entities.PaymentTransaction, error) {
	return r.queryOne(ctx, transactionsExternalPayIndex, "external_payment_id", externalPaymentID)
}

func (r *PaymentTransactionDynamoRepository) queryOne(ctx context.Context, index, key, value string) (entities.PaymentTransaction, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": key,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.PaymentTransaction{}, err
	}
	if len(out.Items) == 0 {
		return entities.PaymentTransaction{}, nil
	}

	var it paymentTransactionItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.PaymentTransaction{}, err
	}
	return fromPaymentTransactionItem(it), nil
}

func (r *PaymentTransactionDynamoRepository) ListByBuyerID(ctx context.Context, buyerID string) ([]entities.PaymentTransaction, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(transactionsBuyerIDIndex),
		KeyConditionExpression: aws.String("buyer_id = :bid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid": &types.AttributeValueMemberS{Value: buyerID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.PaymentTransaction, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentTransactionItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentTransactionItem(it))
	}
	return items, nil
}

// UpdateStatus performs the conditional status write: the item's stored status
// must still equal `prev` (the value the caller just read), otherwise the
// write is rejected with interfaces.ErrPreconditionFailed and nothing changes.
func (r *PaymentTransactionDynamoRepository) UpdateStatus(ctx context.Context, id string, prev, next entities.PaymentStatus, externalPaymentID string, payload json.RawMessage) (entities.PaymentTransaction, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	updateExpr := "SET #st = :next, status_rank = :rank, updated_at = :now"
	exprNames := map[string]string{
		"#st": "status",
	}
	exprValues := map[string]types.AttributeValue{
		":next": &types.AttributeValueMemberS{Value: string(next)},
		":prev": &types.AttributeValueMemberS{Value: string(prev)},
		":rank": &types.AttributeValueMemberN{Value: strconv.Itoa(next.Rank())},
		":now":  &types.AttributeValueMemberS{Value: now},
	}
	if externalPaymentID != "" {
		updateExpr += ", external_payment_id = :epid"
		exprValues[":epid"] = &types.AttributeValueMemberS{Value: externalPaymentID}
	}
	if len(payload) > 0 {
		updateExpr += ", gateway_payload_raw = :payload"
		exprValues[":payload"] = &types.AttributeValueMemberS{Value: string(payload)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String("attribute_exists(id) AND #st = :prev"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return entities.PaymentTransaction{}, interfaces.ErrPreconditionFailed
		}
		return entities.PaymentTransaction{}, err
	}

	var it paymentTransactionItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.PaymentTransaction{}, err
	}
	return fromPaymentTransactionItem(it), nil
}

func toPaymentTransactionItem(tx entities.PaymentTransaction) paymentTransactionItem {
	return paymentTransactionItem{
		ID:                tx.ID,
		Reference:         tx.Reference,
		ExternalPaymentID: tx.ExternalPaymentID,
		Status:            string(tx.Status),
		StatusRank:        tx.Status.Rank(),
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		ItemID:            tx.ItemID,
		BuyerID:           tx.BuyerID,
		SellerID:          tx.SellerID,
		UnknownOrigin:     tx.UnknownOrigin,
		GatewayPayloadRaw: string(tx.GatewayPayloadRaw),
		CreatedAt:         tx.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         tx.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentTransactionItem(it paymentTransactionItem) entities.PaymentTransaction {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.PaymentTransaction{
		ID:                it.ID,
		Reference:         it.Reference,
		ExternalPaymentID: it.ExternalPaymentID,
		Status:            entities.PaymentStatus(it.Status),
		Amount:            it.Amount,
		Currency:          it.Currency,
		ItemID:            it.ItemID,
		BuyerID:           it.BuyerID,
		SellerID:          it.SellerID,
		UnknownOrigin:     it.UnknownOrigin,
		GatewayPayloadRaw: json.RawMessage(it.GatewayPayloadRaw),
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}
