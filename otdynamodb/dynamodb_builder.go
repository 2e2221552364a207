package otdynamodb

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/optistream/go-tracking-sdk/subsystems"
)

// QueueStoreBuilder is a builder for configuring the DynamoDB-based queue store.
//
// Obtain an instance of this type by calling QueueStore(). After calling its methods to specify any
// desired custom settings, store it in the SDK configuration's Queue field.
//
// Builder calls can be chained, for example:
//
//	config.Queue = otdynamodb.QueueStore("tablename").SessionOptions(someOption).Prefix("prefix")
//
// You do not need to call the builder's Build method yourself to build the actual queue store; that
// will be done by the SDK.
type QueueStoreBuilder struct {
	client         dynamodbiface.DynamoDBAPI
	table          string
	prefix         string
	configs        []*aws.Config
	sessionOptions session.Options
}

// QueueStore returns a configurable builder for a DynamoDB-backed queue store.
//
// The tableName parameter is required, and the table must already exist in DynamoDB.
func QueueStore(tableName string) *QueueStoreBuilder {
	return &QueueStoreBuilder{
		table: tableName,
	}
}

// Prefix specifies a prefix for namespacing the queue store's items. The default is no prefix.
//
// Use different prefixes if several applications deliver events through the same table.
func (b *QueueStoreBuilder) Prefix(prefix string) *QueueStoreBuilder {
	b.prefix = prefix
	return b
}

// ClientConfig adds an AWS configuration object for the DynamoDB client. This allows you to customize
// settings such as the retry behavior.
func (b *QueueStoreBuilder) ClientConfig(config *aws.Config) *QueueStoreBuilder {
	if config != nil {
		b.configs = append(b.configs, config)
	}
	return b
}

// DynamoClient specifies an existing DynamoDB client instance. Use this if you want to customize the client
// used by the queue store in ways that are not supported by other QueueStoreBuilder options. If you
// specify this option, then any configurations specified with SessionOptions or ClientConfig will be ignored.
func (b *QueueStoreBuilder) DynamoClient(client dynamodbiface.DynamoDBAPI) *QueueStoreBuilder {
	b.client = client
	return b
}

// SessionOptions specifies an AWS Session.Options object to use when creating the DynamoDB session. This
// can be used to set properties such as the region programmatically, rather than relying on the defaults
// from the environment.
func (b *QueueStoreBuilder) SessionOptions(options session.Options) *QueueStoreBuilder {
	b.sessionOptions = options
	return b
}

// Build is called internally by the SDK.
func (b *QueueStoreBuilder) Build(clientContext subsystems.ClientContext) (subsystems.QueueStore, error) {
	if b.table == "" {
		return nil, errors.New("table name is required")
	}
	client := b.client
	if client == nil {
		sess, err := session.NewSessionWithOptions(b.sessionOptions)
		if err != nil {
			return nil, err
		}
		client = dynamodb.New(sess, b.configs...)
	}
	return newDynamoDBQueueStoreImpl(client, b.table, b.prefix, clientContext.GetLogging().Loggers), nil
}
