package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kian-Chen/DSADesign/domain/social"
	pkgerrors "github.com/Kian-Chen/DSADesign/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// API is the part of the DynamoDB client the snapshot store needs
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// snapshotItem is how the graph snapshot is stored in DynamoDB
type snapshotItem struct {
	PK          string              `dynamodbav:"PK"` // SNAPSHOT#<key>
	SK          string              `dynamodbav:"SK"` // LATEST
	Users       []social.User       `dynamodbav:"Users"`
	Groups      map[string][]string `dynamodbav:"Groups"`
	Friendships []social.Friendship `dynamodbav:"Friendships"`
	UpdatedAt   string              `dynamodbav:"UpdatedAt"`
}

// SnapshotStore keeps the latest graph snapshot in a single DynamoDB item
type SnapshotStore struct {
	client    API
	tableName string
	key       string
	logger    *zap.Logger
}

// NewSnapshotStore creates a new DynamoDB snapshot store
func NewSnapshotStore(client API, tableName, key string, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{
		client:    client,
		tableName: tableName,
		key:       key,
		logger:    logger,
	}
}

func (s *SnapshotStore) itemKey() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("SNAPSHOT#%s", s.key)},
		"SK": &types.AttributeValueMemberS{Value: "LATEST"},
	}
}

// Save overwrites the latest snapshot item
func (s *SnapshotStore) Save(ctx context.Context, snapshot social.Snapshot) error {
	item, err := attributevalue.MarshalMap(snapshotItem{
		PK:          fmt.Sprintf("SNAPSHOT#%s", s.key),
		SK:          "LATEST",
		Users:       snapshot.Users,
		Groups:      snapshot.Groups,
		Friendships: snapshot.Friendships,
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal snapshot").WithCause(err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return classify("PutItem", err)
	}

	s.logger.Debug("Snapshot saved to DynamoDB",
		zap.String("table", s.tableName),
		zap.String("key", s.key),
		zap.Int("users", len(snapshot.Users)),
	)
	return nil
}

// Load reads the latest snapshot item. A missing item means nothing was
// saved yet.
func (s *SnapshotStore) Load(ctx context.Context) (*social.Snapshot, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            s.itemKey(),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, classify("GetItem", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item snapshotItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewInternalError("failed to unmarshal snapshot").WithCause(err)
	}
	return &social.Snapshot{
		Users:       item.Users,
		Groups:      item.Groups,
		Friendships: item.Friendships,
	}, nil
}

// classify maps DynamoDB API errors onto application errors
func classify(operation string, err error) error {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return pkgerrors.NewDatabaseError(operation, err)
	}

	switch ae.ErrorCode() {
	case "ResourceNotFoundException":
		return pkgerrors.NewNotFoundError("snapshot table").WithCode(ae.ErrorCode()).WithCause(err)
	case "ProvisionedThroughputExceededException", "ThrottlingException", "RequestLimitExceeded":
		return pkgerrors.NewUnavailableError("dynamodb").WithCode(ae.ErrorCode()).WithCause(err)
	default:
		return pkgerrors.NewDatabaseError(operation, err).WithCode(ae.ErrorCode())
	}
}
