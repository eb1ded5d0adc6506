package dynamodb

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsv2dynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsv2types "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	awsv2xray "github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/aws/aws-xray-sdk-go/xray"
)

// api is the subset of the DynamoDB client the repositories use.
type api interface {
	PutItem(ctx context.Context, in *awsv2dynamodb.PutItemInput, optFns ...func(*awsv2dynamodb.Options)) (*awsv2dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *awsv2dynamodb.GetItemInput, optFns ...func(*awsv2dynamodb.Options)) (*awsv2dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *awsv2dynamodb.UpdateItemInput, optFns ...func(*awsv2dynamodb.Options)) (*awsv2dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, in *awsv2dynamodb.QueryInput, optFns ...func(*awsv2dynamodb.Options)) (*awsv2dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, in *awsv2dynamodb.TransactWriteItemsInput, optFns ...func(*awsv2dynamodb.Options)) (*awsv2dynamodb.TransactWriteItemsOutput, error)
}

type Client struct {
	db        api
	tableName string
}

// NewClient builds a traced DynamoDB client. endpoint overrides the AWS
// endpoint, which is how DynamoDB Local is reached in development.
func NewClient(ctx context.Context, region, tableName, endpoint string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	awsv2xray.AWSV2Instrumentor(&cfg.APIOptions)
	client := awsv2dynamodb.NewFromConfig(cfg, func(o *awsv2dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &Client{db: client, tableName: tableName}, nil
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseOptionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	return &t
}

func isConditionalCheckFailure(err error) bool {
	var condErr *awsv2types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}

// cancellationReasons returns the per-item codes of a cancelled transaction,
// or nil when err is not a cancellation.
func cancellationReasons(err error) []string {
	var cancelled *awsv2types.TransactionCanceledException
	if !errors.As(err, &cancelled) {
		return nil
	}
	codes := make([]string, len(cancelled.CancellationReasons))
	for i, reason := range cancelled.CancellationReasons {
		codes[i] = aws.ToString(reason.Code)
	}
	return codes
}

func key(pk, sk string) map[string]awsv2types.AttributeValue {
	return map[string]awsv2types.AttributeValue{
		"PK": &awsv2types.AttributeValueMemberS{Value: pk},
		"SK": &awsv2types.AttributeValueMemberS{Value: sk},
	}
}

func (c *Client) put(ctx context.Context, segment string, record any, condition string) error {
	return c.putIf(ctx, segment, record, condition, nil)
}

// putIf is put with values for the placeholders used in condition.
func (c *Client) putIf(ctx context.Context, segment string, record any, condition string, values map[string]awsv2types.AttributeValue) error {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return err
	}
	input := &awsv2dynamodb.PutItemInput{TableName: aws.String(c.tableName), Item: av}
	if condition != "" {
		input.ConditionExpression = aws.String(condition)
	}
	if len(values) > 0 {
		input.ExpressionAttributeValues = values
	}
	return xray.Capture(ctx, segment, func(ctx context.Context) error {
		_, err := c.db.PutItem(ctx, input)
		return err
	})
}

// get loads the item at pk/sk into out, reporting false when it does not exist.
func (c *Client) get(ctx context.Context, segment, pk, sk string, out any) (bool, error) {
	var resp *awsv2dynamodb.GetItemOutput
	err := xray.Capture(ctx, segment, func(ctx context.Context) error {
		var e error
		resp, e = c.db.GetItem(ctx, &awsv2dynamodb.GetItemInput{
			TableName:      aws.String(c.tableName),
			Key:            key(pk, sk),
			ConsistentRead: aws.Bool(true),
		})
		return e
	})
	if err != nil {
		return false, err
	}
	if resp.Item == nil {
		return false, nil
	}
	return true, attributevalue.UnmarshalMap(resp.Item, out)
}

// query walks every page of input and returns the raw items.
func (c *Client) query(ctx context.Context, segment string, input *awsv2dynamodb.QueryInput) ([]map[string]awsv2types.AttributeValue, error) {
	input.TableName = aws.String(c.tableName)
	var items []map[string]awsv2types.AttributeValue
	err := xray.Capture(ctx, segment, func(ctx context.Context) error {
		paginator := awsv2dynamodb.NewQueryPaginator(c.db, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return err
			}
			items = append(items, page.Items...)
		}
		return nil
	})
	return items, err
}

func (c *Client) transact(ctx context.Context, segment string, items ...awsv2types.TransactWriteItem) error {
	return xray.Capture(ctx, segment, func(ctx context.Context) error {
		_, err := c.db.TransactWriteItems(ctx, &awsv2dynamodb.TransactWriteItemsInput{TransactItems: items})
		return err
	})
}

func (c *Client) transactPut(record any, condition string) (awsv2types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return awsv2types.TransactWriteItem{}, err
	}
	return awsv2types.TransactWriteItem{Put: &awsv2types.Put{
		TableName:           aws.String(c.tableName),
		Item:                av,
		ConditionExpression: aws.String(condition),
	}}, nil
}
