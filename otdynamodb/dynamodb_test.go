package otdynamodb

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optistream/go-tracking-sdk/internal/sharedtest"
	"github.com/optistream/go-tracking-sdk/subsystems"
	"github.com/optistream/go-tracking-sdk/testhelpers/queuetest"
)

const testTableName = "OT_DYNAMODB_TEST_TABLE"

func TestDynamoDBQueueStoreWithFakeClient(t *testing.T) {
	fake := newFakeDynamoDB()
	fakeError := errors.New("sorry")
	errorFake := newFakeDynamoDB()
	errorFake.fakeError = fakeError

	queuetest.NewQueueStoreTestSuite(
		func(prefix string) subsystems.ComponentConfigurer[subsystems.QueueStore] {
			return QueueStore(testTableName).DynamoClient(fake).Prefix(prefix)
		},
		func(prefix string) error {
			fake.clear(namespaceForPrefix(prefix))
			return nil
		},
	).
		Persistent().
		ErrorStoreFactory(
			QueueStore(testTableName).DynamoClient(errorFake),
			func(t assert.TestingT, err error) { assert.ErrorIs(t, err, fakeError) },
		).
		UnreadableValueWriter(func(prefix string, count int) error {
			fake.putUnreadable(namespaceForPrefix(prefix), count)
			return nil
		}).
		Run(t)
}

func TestDynamoDBFirstIsNotBlockedByUnreadableValues(t *testing.T) {
	fake := newFakeDynamoDB()
	store, err := QueueStore(testTableName).DynamoClient(fake).Build(sharedtest.NewSimpleTestContext(""))
	require.NoError(t, err)

	fake.putUnreadable(namespaceForPrefix(""), 100)
	records := sharedtest.MakeRecords(5)
	require.NoError(t, store.Enqueue(records))

	first, err := store.First(100)
	require.NoError(t, err)
	sharedtest.AssertRecordsEqual(t, records, first)
}

func TestDynamoDBRemoveDeletesInBatchesAndResubmitsUnprocessedItems(t *testing.T) {
	fake := newFakeDynamoDB()
	store, err := QueueStore(testTableName).DynamoClient(fake).Build(sharedtest.NewSimpleTestContext(""))
	require.NoError(t, err)

	records := sharedtest.MakeRecords(60)
	require.NoError(t, store.Enqueue(records))
	fake.unprocessed = 3
	require.NoError(t, store.Remove(records))

	assert.Equal(t, []int{25, 25, 13}, fake.batchSizes)
	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDynamoDBEnqueueUsesSeparateTransactionsForLargeGroups(t *testing.T) {
	fake := newFakeDynamoDB()
	store, err := QueueStore(testTableName).DynamoClient(fake).Build(sharedtest.NewSimpleTestContext(""))
	require.NoError(t, err)

	records := sharedtest.MakeRecords(250)
	require.NoError(t, store.Enqueue(records))
	first, err := store.First(300)
	require.NoError(t, err)
	sharedtest.AssertRecordsEqual(t, records, first)
}

// The following tests need DynamoDB Local or a compatible server. Set OTDYNAMODB_TEST_ENDPOINT, for
// instance to http://localhost:8000, to run them.

func TestDynamoDBQueueStoreWithServer(t *testing.T) {
	endpoint := os.Getenv("OTDYNAMODB_TEST_ENDPOINT")
	if endpoint == "" || sharedtest.ShouldSkipDatabaseTests() {
		t.Skip("skipping DynamoDB tests because OTDYNAMODB_TEST_ENDPOINT is not set")
	}
	require.NoError(t, createTableIfNecessary(endpoint, testTableName))

	queuetest.NewQueueStoreTestSuite(
		func(prefix string) subsystems.ComponentConfigurer[subsystems.QueueStore] {
			return QueueStore(testTableName).SessionOptions(makeTestOptions(endpoint)).Prefix(prefix)
		},
		func(prefix string) error { return clearTestData(endpoint, prefix) },
	).
		Persistent().
		ErrorStoreFactory(
			QueueStore("nonexistent-table").SessionOptions(makeTestOptions(endpoint)),
			func(t assert.TestingT, err error) { assert.Error(t, err) },
		).
		Run(t)
}

func makeTestOptions(endpoint string) session.Options {
	return session.Options{
		Config: aws.Config{
			Credentials: credentials.NewStaticCredentials("dummy", "not", "used"),
			Endpoint:    aws.String(endpoint),
			Region:      aws.String("us-east-1"),
		},
	}
}

func makeTestClient(endpoint string) (*dynamodb.DynamoDB, error) {
	sess, err := session.NewSessionWithOptions(makeTestOptions(endpoint))
	if err != nil {
		return nil, err
	}
	return dynamodb.New(sess), nil
}

func clearTestData(endpoint, prefix string) error {
	client, err := makeTestClient(endpoint)
	if err != nil {
		return err
	}
	store := newDynamoDBQueueStoreImpl(client, testTableName, prefix, sharedtest.NewTestLoggers())
	var keys []string
	if err := store.queryQueue(0, func(item queuedItem) bool {
		keys = append(keys, item.key)
		return true
	}); err != nil {
		return err
	}
	return store.deleteItems(keys)
}

func createTableIfNecessary(endpoint, table string) error {
	client, err := makeTestClient(endpoint)
	if err != nil {
		return err
	}
	_, err = client.DescribeTable(&dynamodb.DescribeTableInput{TableName: aws.String(table)})
	if err == nil {
		return nil
	}
	var e awserr.Error
	if !errors.As(err, &e) || e.Code() != dynamodb.ErrCodeResourceNotFoundException {
		return err
	}
	createParams := dynamodb.CreateTableInput{
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String(tablePartitionKey),
				AttributeType: aws.String(dynamodb.ScalarAttributeTypeS),
			},
			{
				AttributeName: aws.String(tableSortKey),
				AttributeType: aws.String(dynamodb.ScalarAttributeTypeS),
			},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String(tablePartitionKey),
				KeyType:       aws.String(dynamodb.KeyTypeHash),
			},
			{
				AttributeName: aws.String(tableSortKey),
				KeyType:       aws.String(dynamodb.KeyTypeRange),
			},
		},
		ProvisionedThroughput: &dynamodb.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(1),
			WriteCapacityUnits: aws.Int64(1),
		},
		TableName: aws.String(table),
	}
	if _, err = client.CreateTable(&createParams); err != nil {
		return err
	}
	// When DynamoDB creates a table, it may not be ready to use immediately
	deadline := time.After(10 * time.Second)
	retry := time.NewTicker(100 * time.Millisecond)
	defer retry.Stop()
	for {
		select {
		case <-deadline:
			return fmt.Errorf("timed out waiting for new table to be ready")
		case <-retry.C:
			tableInfo, err := client.DescribeTable(&dynamodb.DescribeTableInput{TableName: aws.String(table)})
			if err == nil && *tableInfo.Table.TableStatus == dynamodb.TableStatusActive {
				return nil
			}
		}
	}
}
