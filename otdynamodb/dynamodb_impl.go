package otdynamodb

// Implementation notes:
//
// - All records of one queue are in the same partition, whose key ("namespace") is derived from the
// prefix. The sort key ("key") is a clock-based sequence number followed by an identifier of the store
// instance, so records sort in the order they were enqueued and two processes never write the same key.
//
// - Enqueue uses TransactWriteItems, so a group of records is either queued completely or not at all.
// DynamoDB limits a transaction to 100 items; larger groups are written in several transactions.
//
// - Remove has to find the keys of the records it is given, so it reads the queue from the oldest item
// until every record has been matched. Deleting an item that another process has already deleted is
// not an error, so concurrent removals of the same records are harmless.

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"golang.org/x/exp/slices"

	"github.com/optistream/go-tracking-sdk/internal/durablequeue"
	"github.com/optistream/go-tracking-sdk/otevents"
)

const (
	// Schema of the DynamoDB table
	tablePartitionKey = "namespace"
	tableSortKey      = "key"
	recordAttribute   = "record"

	queueNamespace = "queue"

	// DynamoDB limits
	maxTransactItems = 100
	maxBatchWrite    = 25
)

// Internal type for our DynamoDB implementation of the QueueStore interface.
type dynamoDBQueueStoreImpl struct {
	client     dynamodbiface.DynamoDBAPI
	table      string
	prefix     string
	instanceID string
	sequencer  *durablequeue.Sequencer
	loggers    ldlog.Loggers
}

type queuedItem struct {
	key  string
	data []byte
}

func newDynamoDBQueueStoreImpl(
	client dynamodbiface.DynamoDBAPI,
	table, prefix string,
	loggers ldlog.Loggers,
) *dynamoDBQueueStoreImpl {
	store := &dynamoDBQueueStoreImpl{
		client:     client,
		table:      table,
		prefix:     prefix,
		instanceID: strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		sequencer:  durablequeue.NewSequencer(),
		loggers:    loggers,
	}
	store.loggers.SetPrefix("DynamoDBQueueStore:")
	store.loggers.Infof("Using DynamoDB table %s", table)
	return store
}

func (store *dynamoDBQueueStoreImpl) Enqueue(records []otevents.WireRecord) error {
	values, err := durablequeue.EncodeRecords(records)
	if err != nil {
		return err
	}
	keys := store.sequencer.NextN(len(values))
	for start := 0; start < len(values); start += maxTransactItems {
		end := start + maxTransactItems
		if end > len(values) {
			end = len(values)
		}
		items := make([]*dynamodb.TransactWriteItem, 0, end-start)
		for i := start; i < end; i++ {
			items = append(items, &dynamodb.TransactWriteItem{
				Put: &dynamodb.Put{
					TableName: aws.String(store.table),
					Item: map[string]*dynamodb.AttributeValue{
						tablePartitionKey: {S: aws.String(store.namespace())},
						tableSortKey:      {S: aws.String(keys[i] + "-" + store.instanceID)},
						recordAttribute:   {S: aws.String(string(values[i]))},
					},
				},
			})
		}
		if _, err := store.client.TransactWriteItems(&dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
			return fmt.Errorf("failed to put %d items in DynamoDB: %w", len(items), err)
		}
	}
	return nil
}

func (store *dynamoDBQueueStoreImpl) First(limit int) ([]otevents.WireRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	collector := durablequeue.NewCollector(limit, store.loggers)
	err := store.queryQueue(int64(limit), func(item queuedItem) bool {
		return collector.Add(item.data)
	})
	if err != nil {
		return nil, err
	}
	return collector.Records(), nil
}

func (store *dynamoDBQueueStoreImpl) Remove(records []otevents.WireRecord) error {
	if len(records) == 0 {
		return nil
	}
	remaining := slices.Clone(records)
	var keys []string
	err := store.queryQueue(0, func(item queuedItem) bool {
		r, err := durablequeue.DecodeRecord(item.data)
		if err != nil {
			return true
		}
		if i := slices.IndexFunc(remaining, r.Equal); i >= 0 {
			keys = append(keys, item.key)
			remaining = slices.Delete(remaining, i, i+1)
		}
		return len(remaining) > 0
	})
	if err != nil {
		return err
	}
	return store.deleteItems(keys)
}

func (store *dynamoDBQueueStoreImpl) Count() (int, error) {
	count := 0
	err := store.client.QueryPages(store.makeQuery(0, aws.String(dynamodb.SelectCount)),
		func(out *dynamodb.QueryOutput, lastPage bool) bool {
			count += int(aws.Int64Value(out.Count))
			return !lastPage
		})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (store *dynamoDBQueueStoreImpl) Close() error {
	return nil
}

func (store *dynamoDBQueueStoreImpl) namespace() string {
	return namespaceForPrefix(store.prefix)
}

func namespaceForPrefix(prefix string) string {
	if prefix == "" {
		return queueNamespace
	}
	return prefix + ":" + queueNamespace
}

func (store *dynamoDBQueueStoreImpl) makeQuery(pageSize int64, selectType *string) *dynamodb.QueryInput {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(store.table),
		ConsistentRead:         aws.Bool(true),
		ScanIndexForward:       aws.Bool(true),
		KeyConditionExpression: aws.String("#namespace = :namespace"),
		ExpressionAttributeNames: map[string]*string{
			"#namespace": aws.String(tablePartitionKey),
		},
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":namespace": {S: aws.String(store.namespace())},
		},
		Select: selectType,
	}
	if pageSize > 0 {
		input.Limit = aws.Int64(pageSize)
	}
	return input
}

// queryQueue reads the queue oldest first, calling fn for each item until it returns false.
func (store *dynamoDBQueueStoreImpl) queryQueue(pageSize int64, fn func(queuedItem) bool) error {
	var itemErr error
	err := store.client.QueryPages(store.makeQuery(pageSize, nil),
		func(out *dynamodb.QueryOutput, lastPage bool) bool {
			for _, item := range out.Items {
				key, data := item[tableSortKey], item[recordAttribute]
				if key == nil || key.S == nil || data == nil || data.S == nil {
					itemErr = fmt.Errorf("invalid item in DynamoDB table %s", store.table)
					return false
				}
				if !fn(queuedItem{key: *key.S, data: []byte(*data.S)}) {
					return false
				}
			}
			return !lastPage
		})
	if err != nil {
		return err
	}
	return itemErr
}

func (store *dynamoDBQueueStoreImpl) deleteItems(keys []string) error {
	requests := make([]*dynamodb.WriteRequest, 0, len(keys))
	for _, key := range keys {
		requests = append(requests, &dynamodb.WriteRequest{
			DeleteRequest: &dynamodb.DeleteRequest{
				Key: map[string]*dynamodb.AttributeValue{
					tablePartitionKey: {S: aws.String(store.namespace())},
					tableSortKey:      {S: aws.String(key)},
				},
			},
		})
	}
	return batchWriteRequests(store.client, store.table, requests)
}

// batchWriteRequests executes a list of write requests (PutItem or DeleteItem) in batches of 25, which
// is the maximum BatchWriteItem can handle. Unprocessed requests are resubmitted.
func batchWriteRequests(client dynamodbiface.DynamoDBAPI, table string, requests []*dynamodb.WriteRequest) error {
	for len(requests) > 0 {
		batchSize := len(requests)
		if batchSize > maxBatchWrite {
			batchSize = maxBatchWrite
		}
		batch := requests[:batchSize]
		requests = requests[batchSize:]

		out, err := client.BatchWriteItem(&dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]*dynamodb.WriteRequest{table: batch},
		})
		if err != nil {
			return fmt.Errorf("failed to write %d items(s) in batch: %w", len(batch), err)
		}
		if out != nil {
			requests = append(requests, out.UnprocessedItems[table]...)
		}
	}
	return nil
}
