package dynamodb

import (
	"context"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsv2dynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsv2types "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type item = map[string]awsv2types.AttributeValue

// fakeDB is an in-memory table that understands the handful of expressions
// the repositories emit.
type fakeDB struct {
	mu       sync.Mutex
	items    map[string]item
	pageSize int
	queries  int
	failNext error
}

func newFakeDB() *fakeDB {
	return &fakeDB{items: map[string]item{}}
}

func newTestClient(db *fakeDB) *Client {
	return &Client{db: db, tableName: "warisin-test"}
}

func str(av awsv2types.AttributeValue) string {
	if s, ok := av.(*awsv2types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func storeKey(k item) string { return str(k["PK"]) + "|" + str(k["SK"]) }

func (f *fakeDB) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeDB) holds(current item, expr *string, names map[string]string, values item) bool {
	if expr == nil {
		return true
	}
	for _, clause := range strings.Split(*expr, " AND ") {
		clause = strings.TrimSpace(clause)
		switch {
		case strings.HasPrefix(clause, "attribute_not_exists("):
			if current != nil {
				return false
			}
		case strings.HasPrefix(clause, "attribute_exists("):
			if current == nil {
				return false
			}
		default:
			parts := strings.SplitN(clause, " = ", 2)
			name := parts[0]
			if n, ok := names[name]; ok {
				name = n
			}
			if current == nil || !reflect.DeepEqual(current[name], values[parts[1]]) {
				return false
			}
		}
	}
	return true
}

func (f *fakeDB) PutItem(_ context.Context, in *awsv2dynamodb.PutItemInput, _ ...func(*awsv2dynamodb.Options)) (*awsv2dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	k := storeKey(in.Item)
	if !f.holds(f.items[k], in.ConditionExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, &awsv2types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
	}
	f.items[k] = in.Item
	return &awsv2dynamodb.PutItemOutput{}, nil
}

func (f *fakeDB) GetItem(_ context.Context, in *awsv2dynamodb.GetItemInput, _ ...func(*awsv2dynamodb.Options)) (*awsv2dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	return &awsv2dynamodb.GetItemOutput{Item: f.items[storeKey(in.Key)]}, nil
}

func (f *fakeDB) UpdateItem(_ context.Context, in *awsv2dynamodb.UpdateItemInput, _ ...func(*awsv2dynamodb.Options)) (*awsv2dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	k := storeKey(in.Key)
	current := f.items[k]
	if !f.holds(current, in.ConditionExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, &awsv2types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
	}
	next := item{}
	for name, v := range current {
		next[name] = v
	}
	for _, assignment := range strings.Split(strings.TrimPrefix(aws.ToString(in.UpdateExpression), "SET "), ",") {
		parts := strings.SplitN(strings.TrimSpace(assignment), " = ", 2)
		name := parts[0]
		if n, ok := in.ExpressionAttributeNames[name]; ok {
			name = n
		}
		next[name] = in.ExpressionAttributeValues[parts[1]]
	}
	f.items[k] = next
	return &awsv2dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDB) Query(_ context.Context, in *awsv2dynamodb.QueryInput, _ ...func(*awsv2dynamodb.Options)) (*awsv2dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	pkAttr, skAttr := "PK", "SK"
	if in.IndexName != nil {
		pkAttr, skAttr = *in.IndexName+"PK", *in.IndexName+"SK"
	}
	pk := str(in.ExpressionAttributeValues[":pk"])
	prefix := str(in.ExpressionAttributeValues[":sk"])
	var matched []item
	for _, it := range f.items {
		if str(it[pkAttr]) == pk && strings.HasPrefix(str(it[skAttr]), prefix) {
			matched = append(matched, it)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := str(matched[i][skAttr]), str(matched[j][skAttr])
		if in.ScanIndexForward != nil && !*in.ScanIndexForward {
			return a > b
		}
		return a < b
	})
	start := 0
	if in.ExclusiveStartKey != nil {
		start, _ = strconv.Atoi(str(in.ExclusiveStartKey["offset"]))
	}
	out := &awsv2dynamodb.QueryOutput{}
	end := len(matched)
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
		out.LastEvaluatedKey = item{"offset": &awsv2types.AttributeValueMemberS{Value: strconv.Itoa(end)}}
	}
	out.Items = matched[start:end]
	return out, nil
}

func (f *fakeDB) TransactWriteItems(_ context.Context, in *awsv2dynamodb.TransactWriteItemsInput, _ ...func(*awsv2dynamodb.Options)) (*awsv2dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	reasons := make([]awsv2types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, op := range in.TransactItems {
		ok := true
		switch {
		case op.ConditionCheck != nil:
			c := op.ConditionCheck
			ok = f.holds(f.items[storeKey(c.Key)], c.ConditionExpression, c.ExpressionAttributeNames, c.ExpressionAttributeValues)
		case op.Put != nil:
			p := op.Put
			ok = f.holds(f.items[storeKey(p.Item)], p.ConditionExpression, p.ExpressionAttributeNames, p.ExpressionAttributeValues)
		}
		reasons[i].Code = aws.String("None")
		if !ok {
			reasons[i].Code = aws.String(conditionalCheckFailed)
			failed = true
		}
	}
	if failed {
		return nil, &awsv2types.TransactionCanceledException{Message: aws.String("cancelled"), CancellationReasons: reasons}
	}
	for _, op := range in.TransactItems {
		if op.Put != nil {
			f.items[storeKey(op.Put.Item)] = op.Put.Item
		}
	}
	return &awsv2dynamodb.TransactWriteItemsOutput{}, nil
}
