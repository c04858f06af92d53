package dynamodb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"alchemy-backend/domain/element"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNamePK_CaseInsensitive(t *testing.T) {
	assert.Equal(t, namePK("Steam"), namePK("steam"))
	assert.Equal(t, "ELEMENT#steam", namePK("  Steam "))
}

func TestPairPK_OrderIndependent(t *testing.T) {
	assert.Equal(t, pairPK("water-id", "fire-id"), pairPK("fire-id", "water-id"))
	assert.Equal(t, "PAIR#fire-id#water-id", pairPK("water-id", "fire-id"))
}

func TestNewElementItem_Fused(t *testing.T) {
	el := &element.Element{
		ID:           "steam-id",
		Name:         "Steam",
		Description:  "Hot vapor.",
		IconURL:      "https://cdn.example.com/steam.png",
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		CombinedFrom: []string{"water-id", "fire-id"},
	}

	item := newElementItem(el)

	assert.Equal(t, "ELEMENT#steam", item.PK)
	assert.Equal(t, elementSortKey, item.SK)
	assert.Equal(t, "PAIR#fire-id#water-id", item.GSI1PK)
	assert.Equal(t, listPartition, item.GSI2PK)
	assert.Contains(t, item.GSI2SK, "steam-id")
	assert.Equal(t, []string{"water-id", "fire-id"}, item.CombinedFrom)
}

func TestNewElementItem_RootHasNoPairKey(t *testing.T) {
	el := &element.Element{
		ID:        "water-id",
		Name:      "Water",
		IconURL:   "/icons/water.png",
		CreatedAt: time.Now(),
	}

	item := newElementItem(el)

	assert.Empty(t, item.GSI1PK)
	assert.Empty(t, item.CombinedFrom)
}

func TestElementItem_RoundTrip(t *testing.T) {
	el := &element.Element{
		ID:           "steam-id",
		Name:         "Steam",
		Description:  "Hot vapor.",
		IconURL:      "https://cdn.example.com/steam.png",
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC),
		CombinedFrom: []string{"water-id", "fire-id"},
	}

	back, err := newElementItem(el).toElement()

	require.NoError(t, err)
	assert.Equal(t, el, back)
}

func TestListOrdering_SortKeySortsByCreation(t *testing.T) {
	earlier := newElementItem(&element.Element{
		ID:        "a",
		Name:      "Mud",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	later := newElementItem(&element.Element{
		ID:        "b",
		Name:      "Steam",
		CreatedAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
	})

	// Descending query order relies on the sort key ordering by timestamp.
	assert.Less(t, earlier.GSI2SK, later.GSI2SK)
}

func TestListOrdering_SortKeySubSecondFractions(t *testing.T) {
	// Timestamps whose fractions would collapse to different widths must
	// still sort by creation time, not by string length.
	at := func(ns int) *element.Element {
		return &element.Element{
			ID:        fmt.Sprintf("id-%d", ns),
			Name:      fmt.Sprintf("Element%d", ns),
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, ns, time.UTC),
		}
	}

	wholeSecond := newElementItem(at(0))
	prefixFraction := newElementItem(at(120000000))
	longerFraction := newElementItem(at(123000000))
	halfSecond := newElementItem(at(500000000))

	assert.Less(t, wholeSecond.GSI2SK, halfSecond.GSI2SK)
	assert.Less(t, prefixFraction.GSI2SK, longerFraction.GSI2SK)
	assert.Less(t, longerFraction.GSI2SK, halfSecond.GSI2SK)
}

type fakeDynamoClient struct {
	scanPages   []*dynamodb.ScanOutput
	scanInputs  []*dynamodb.ScanInput
	batchInputs []*dynamodb.BatchWriteItemInput
}

func (f *fakeDynamoClient) PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoClient) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamoClient) Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeDynamoClient) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanInputs = append(f.scanInputs, in)
	return f.scanPages[len(f.scanInputs)-1], nil
}

func (f *fakeDynamoClient) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.batchInputs = append(f.batchInputs, in)
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func elementKey(n int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("ELEMENT#element%d", n)},
		"SK": &types.AttributeValueMemberS{Value: elementSortKey},
	}
}

func TestDeleteAll_ConsistentScanAndChunkedDeletes(t *testing.T) {
	// 30 items across two scan pages: the first delete batch holds 25
	// requests, the second holds the remaining 5.
	pageOne := make([]map[string]types.AttributeValue, 0, 20)
	for n := 0; n < 20; n++ {
		pageOne = append(pageOne, elementKey(n))
	}
	pageTwo := make([]map[string]types.AttributeValue, 0, 10)
	for n := 20; n < 30; n++ {
		pageTwo = append(pageTwo, elementKey(n))
	}

	fake := &fakeDynamoClient{scanPages: []*dynamodb.ScanOutput{
		{Items: pageOne, LastEvaluatedKey: elementKey(19)},
		{Items: pageTwo},
	}}
	repo := &ElementRepository{client: fake, tableName: "elements-test", logger: zap.NewNop()}

	deleted, err := repo.DeleteAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 30, deleted)

	// Enumeration reads the base table with strong consistency, so an
	// element created just before the wipe cannot survive it.
	require.Len(t, fake.scanInputs, 2)
	for _, in := range fake.scanInputs {
		require.NotNil(t, in.ConsistentRead)
		assert.True(t, *in.ConsistentRead)
		assert.Nil(t, in.IndexName)
	}

	require.Len(t, fake.batchInputs, 2)
	assert.Len(t, fake.batchInputs[0].RequestItems["elements-test"], 25)
	assert.Len(t, fake.batchInputs[1].RequestItems["elements-test"], 5)
	first := fake.batchInputs[0].RequestItems["elements-test"][0].DeleteRequest
	require.NotNil(t, first)
	assert.Equal(t, elementKey(0), first.Key)
}

func TestDeleteAll_EmptyStore(t *testing.T) {
	fake := &fakeDynamoClient{scanPages: []*dynamodb.ScanOutput{{}}}
	repo := &ElementRepository{client: fake, tableName: "elements-test", logger: zap.NewNop()}

	deleted, err := repo.DeleteAll(context.Background())

	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.Empty(t, fake.batchInputs)
}
