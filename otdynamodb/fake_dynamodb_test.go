package otdynamodb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// fakeDynamoDB implements the subset of the DynamoDB API that the queue store uses, keeping items in
// memory. Calling any other method panics, because of the nil embedded interface.
type fakeDynamoDB struct {
	dynamodbiface.DynamoDBAPI
	partitions  map[string]map[string]string
	fakeError   error
	unprocessed int // number of delete requests to report as unprocessed, once each
	batchSizes  []int
	lock        sync.Mutex
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{partitions: make(map[string]map[string]string)}
}

func (f *fakeDynamoDB) TransactWriteItems(input *dynamodb.TransactWriteItemsInput) (
	*dynamodb.TransactWriteItemsOutput, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.fakeError != nil {
		return nil, f.fakeError
	}
	for _, item := range input.TransactItems {
		put := item.Put.Item
		f.partition(*put[tablePartitionKey].S)[*put[tableSortKey].S] = *put[recordAttribute].S
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (f *fakeDynamoDB) QueryPages(input *dynamodb.QueryInput, fn func(*dynamodb.QueryOutput, bool) bool) error {
	f.lock.Lock()
	if f.fakeError != nil {
		f.lock.Unlock()
		return f.fakeError
	}
	partition := f.partition(*input.ExpressionAttributeValues[":namespace"].S)
	keys := make([]string, 0, len(partition))
	for k := range partition {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var items []map[string]*dynamodb.AttributeValue
	for _, k := range keys {
		items = append(items, map[string]*dynamodb.AttributeValue{
			tableSortKey:    {S: aws.String(k)},
			recordAttribute: {S: aws.String(partition[k])},
		})
	}
	f.lock.Unlock()

	pageSize := len(items)
	if input.Limit != nil {
		pageSize = int(*input.Limit)
	}
	if pageSize == 0 {
		pageSize = 1
	}
	for start := 0; ; start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		page := items[start:end]
		out := &dynamodb.QueryOutput{Count: aws.Int64(int64(len(page)))}
		if input.Select == nil || *input.Select != dynamodb.SelectCount {
			out.Items = page
		}
		lastPage := end == len(items)
		if !fn(out, lastPage) || lastPage {
			return nil
		}
	}
}

func (f *fakeDynamoDB) BatchWriteItem(input *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.fakeError != nil {
		return nil, f.fakeError
	}
	out := &dynamodb.BatchWriteItemOutput{UnprocessedItems: make(map[string][]*dynamodb.WriteRequest)}
	for table, requests := range input.RequestItems {
		f.batchSizes = append(f.batchSizes, len(requests))
		for _, r := range requests {
			if f.unprocessed > 0 {
				f.unprocessed--
				out.UnprocessedItems[table] = append(out.UnprocessedItems[table], r)
				continue
			}
			key := r.DeleteRequest.Key
			delete(f.partition(*key[tablePartitionKey].S), *key[tableSortKey].S)
		}
	}
	return out, nil
}

func (f *fakeDynamoDB) partition(namespace string) map[string]string {
	p := f.partitions[namespace]
	if p == nil {
		p = make(map[string]string)
		f.partitions[namespace] = p
	}
	return p
}

// putUnreadable stores values that sort ahead of any key the store generates and that cannot be parsed.
func (f *fakeDynamoDB) putUnreadable(namespace string, count int) {
	f.lock.Lock()
	defer f.lock.Unlock()
	for i := 0; i < count; i++ {
		f.partition(namespace)[fmt.Sprintf("%020d-unreadable", i)] = "not json"
	}
}

func (f *fakeDynamoDB) clear(namespace string) {
	f.lock.Lock()
	delete(f.partitions, namespace)
	f.lock.Unlock()
}
