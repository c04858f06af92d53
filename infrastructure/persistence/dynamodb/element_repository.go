package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"alchemy-backend/application/ports"
	"alchemy-backend/domain/element"
	apperrors "alchemy-backend/pkg/errors"
	"alchemy-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	elementSortKey = "METADATA"
	listPartition  = "ELEMENT"

	// BatchWriteItem accepts at most 25 requests per call
	deleteBatchSize = 25
)

// dynamoAPI is the slice of the DynamoDB client the repository needs
type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// ElementRepository implements the ElementRepository port using DynamoDB.
//
// Single-table layout:
//   - PK = ELEMENT#<nameKey>, SK = METADATA. The partition key carries the
//     lower-cased name, so attribute_not_exists(PK) on put IS the
//     case-insensitive unique-name constraint.
//   - GSI1 (PairIndex): GSI1PK = PAIR#<idA>#<idB> with the ids sorted, set
//     only on fused elements. Lookup by unordered parent pair.
//   - GSI2 (CreatedIndex): GSI2PK = ELEMENT, GSI2SK = <createdAt>#<id>.
//     Newest-first listing. Both GSIs project all attributes.
type ElementRepository struct {
	client        dynamoAPI
	tableName     string
	pairIndexName string
	listIndexName string
	logger        *zap.Logger
}

// NewElementRepository creates a new ElementRepository
func NewElementRepository(client *dynamodb.Client, tableName, pairIndexName, listIndexName string, logger *zap.Logger) ports.ElementRepository {
	return &ElementRepository{
		client:        client,
		tableName:     tableName,
		pairIndexName: pairIndexName,
		listIndexName: listIndexName,
		logger:        logger,
	}
}

// elementItem represents the DynamoDB item structure for an element
type elementItem struct {
	PK           string   `dynamodbav:"PK"`
	SK           string   `dynamodbav:"SK"`
	GSI1PK       string   `dynamodbav:"GSI1PK,omitempty"`
	GSI1SK       string   `dynamodbav:"GSI1SK,omitempty"`
	GSI2PK       string   `dynamodbav:"GSI2PK"`
	GSI2SK       string   `dynamodbav:"GSI2SK"`
	EntityType   string   `dynamodbav:"EntityType"`
	ElementID    string   `dynamodbav:"ElementID"`
	Name         string   `dynamodbav:"Name"`
	Description  string   `dynamodbav:"Description"`
	IconURL      string   `dynamodbav:"IconURL"`
	CombinedFrom []string `dynamodbav:"CombinedFrom,omitempty"`
	CreatedAt    string   `dynamodbav:"CreatedAt"`
}

func namePK(name string) string {
	return fmt.Sprintf("ELEMENT#%s", element.NameKey(name))
}

func pairPK(idA, idB string) string {
	return fmt.Sprintf("PAIR#%s", element.PairKey(idA, idB))
}

func newElementItem(el *element.Element) elementItem {
	item := elementItem{
		PK:          namePK(el.Name),
		SK:          elementSortKey,
		GSI2PK:      listPartition,
		GSI2SK:      fmt.Sprintf("%s#%s", utils.FormatRFC3339(el.CreatedAt), el.ID),
		EntityType:  "ELEMENT",
		ElementID:   el.ID,
		Name:        el.Name,
		Description: el.Description,
		IconURL:     el.IconURL,
		CreatedAt:   utils.FormatRFC3339(el.CreatedAt),
	}
	if len(el.CombinedFrom) == 2 {
		item.GSI1PK = pairPK(el.CombinedFrom[0], el.CombinedFrom[1])
		item.GSI1SK = "ELEMENT"
		item.CombinedFrom = el.CombinedFrom
	}
	return item
}

func (i elementItem) toElement() (*element.Element, error) {
	createdAt, err := utils.ParseRFC3339(i.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse element timestamp: %w", err)
	}
	return &element.Element{
		ID:           i.ElementID,
		Name:         i.Name,
		Description:  i.Description,
		IconURL:      i.IconURL,
		CreatedAt:    createdAt,
		CombinedFrom: i.CombinedFrom,
	}, nil
}

// Create persists a new element. The conditional put fails when another
// element already holds the same name key, which surfaces as a
// duplicate-name error for the orchestrator to converge on.
func (r *ElementRepository) Create(ctx context.Context, el *element.Element) error {
	av, err := attributevalue.MarshalMap(newElementItem(el))
	if err != nil {
		return fmt.Errorf("failed to marshal element: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return apperrors.NewDuplicateNameError(el.Name)
		}
		r.logger.Error("Failed to save element to DynamoDB",
			zap.Error(err),
			zap.String("elementID", el.ID),
			zap.String("name", el.Name),
		)
		return apperrors.NewDatabaseError("create element", err)
	}

	r.logger.Info("Element saved to DynamoDB",
		zap.String("elementID", el.ID),
		zap.String("name", el.Name),
		zap.Strings("combinedFrom", el.CombinedFrom),
	)

	return nil
}

// FindByName retrieves an element by its case-insensitive name.
// Reads the base table with strong consistency so a lookup never misses
// a creation that already completed.
func (r *ElementRepository) FindByName(ctx context.Context, name string) (*element.Element, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: namePK(name)},
			"SK": &types.AttributeValueMemberS{Value: elementSortKey},
		},
		ConsistentRead: aws.Bool(true),
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find element by name", err)
	}
	if result.Item == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("element '%s'", name))
	}

	var item elementItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal element: %w", err)
	}

	return item.toElement()
}

// FindByParentPair retrieves the fused element for the unordered pair
// {idA, idB}. The pair index is eventually consistent; the orchestrator
// tolerates a stale miss via the unique-name constraint at creation time.
func (r *ElementRepository) FindByParentPair(ctx context.Context, idA, idB string) (*element.Element, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.pairIndexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pairPK(idA, idB)},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find element by parent pair", err)
	}
	if len(result.Items) == 0 {
		return nil, apperrors.NewNotFoundError("fused element")
	}

	var item elementItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal element: %w", err)
	}

	return item.toElement()
}

// ListAll retrieves every element, most recently created first
func (r *ElementRepository) ListAll(ctx context.Context) ([]*element.Element, error) {
	var elements []*element.Element
	var lastKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(r.listIndexName),
			KeyConditionExpression: aws.String("GSI2PK = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: listPartition},
			},
			ScanIndexForward:  aws.Bool(false),
			ExclusiveStartKey: lastKey,
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, apperrors.NewDatabaseError("list elements", err)
		}

		for _, raw := range result.Items {
			var item elementItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Failed to unmarshal element item", zap.Error(err))
				continue
			}
			el, err := item.toElement()
			if err != nil {
				r.logger.Warn("Skipping element with bad timestamp",
					zap.String("elementID", item.ElementID),
					zap.Error(err),
				)
				continue
			}
			elements = append(elements, el)
		}

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	return elements, nil
}

// DeleteAll removes every element and returns the count removed.
// Used only by the reset operation, which re-seeds the roots afterwards.
// Enumeration is a strongly consistent scan of the base table, not the
// eventually consistent listing index, so a creation that completed just
// before the wipe cannot survive it.
func (r *ElementRepository) DeleteAll(ctx context.Context) (int, error) {
	var keys []map[string]types.AttributeValue
	var lastKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(r.tableName),
			ProjectionExpression: aws.String("PK, SK"),
			ConsistentRead:       aws.Bool(true),
			ExclusiveStartKey:    lastKey,
		})
		if err != nil {
			return 0, apperrors.NewDatabaseError("scan elements", err)
		}

		keys = append(keys, out.Items...)
		lastKey = out.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	deleted := 0
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, key := range keys[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: key},
			})
		}

		unprocessed := map[string][]types.WriteRequest{r.tableName: requests}
		for len(unprocessed[r.tableName]) > 0 {
			out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: unprocessed,
			})
			if err != nil {
				return deleted, apperrors.NewDatabaseError("delete all elements", err)
			}
			deleted += len(unprocessed[r.tableName]) - len(out.UnprocessedItems[r.tableName])
			unprocessed = out.UnprocessedItems
		}
	}

	r.logger.Info("Deleted all elements", zap.Int("count", deleted))

	return deleted, nil
}
