// Package otdynamodb provides a DynamoDB-backed queue store for the Optistream tracking SDK.
//
// Undelivered records are kept in a DynamoDB table, so they survive a restart of the application and can
// be delivered by the next process that uses the same table and prefix. This is useful for environments
// like AWS Lambda, where a process may be frozen or discarded at any time.
//
//	config := otclient.Config{
//	    Queue: otdynamodb.QueueStore("my-table-name"),
//	}
//
// The table must already exist. It must have a partition key called "namespace" and a sort key called
// "key", both of string type.
//
// By default, the store uses https://docs.aws.amazon.com/sdk-for-go/api/aws/session/#NewSession to
// configure access to DynamoDB, so the configuration will use your local AWS credentials as well as AWS
// environment variables. You can also override the default configuration with SessionOptions, or use an
// already-configured DynamoDB client instance with DynamoClient.
package otdynamodb
