package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsv2dynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsv2types "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"warisin/internal/domain"
)

type categoryRecord struct {
	PK         string
	SK         string
	EntityType string
	ID         string
	Name       string
}

type categoryNameRecord struct {
	PK         string
	SK         string
	EntityType string
	CategoryID string
}

type CategoryRepository struct{ client *Client }

func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

// Create reserves the lower-cased name alongside the category itself.
func (r *CategoryRepository) Create(ctx context.Context, category domain.HeritageCategory) error {
	item, err := r.client.transactPut(categoryRecord{
		PK:         categoriesPK,
		SK:         categorySK(category.ID),
		EntityType: "CATEGORY",
		ID:         category.ID,
		Name:       category.Name,
	}, "attribute_not_exists(SK)")
	if err != nil {
		return err
	}
	guard, err := r.client.transactPut(categoryNameRecord{
		PK:         categoryNamePK(category.Name),
		SK:         categoryNameSK,
		EntityType: "CATEGORY_NAME",
		CategoryID: category.ID,
	}, notExists)
	if err != nil {
		return err
	}
	err = r.client.transact(ctx, "DynamoDB.CreateCategory", item, guard)
	if cancellationReasons(err) != nil {
		return domain.ErrConflict
	}
	return err
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID string) (domain.HeritageCategory, error) {
	var rec categoryRecord
	found, err := r.client.get(ctx, "DynamoDB.GetCategory", categoriesPK, categorySK(categoryID), &rec)
	if err != nil {
		return domain.HeritageCategory{}, err
	}
	if !found {
		return domain.HeritageCategory{}, domain.ErrNotFound
	}
	return domain.HeritageCategory{ID: rec.ID, Name: rec.Name}, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.HeritageCategory, error) {
	items, err := r.client.query(ctx, "DynamoDB.QueryCategories", &awsv2dynamodb.QueryInput{
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
			":pk": &awsv2types.AttributeValueMemberS{Value: categoriesPK},
			":sk": &awsv2types.AttributeValueMemberS{Value: "CATEGORY#"},
		},
	})
	if err != nil {
		return nil, err
	}
	categories := make([]domain.HeritageCategory, 0, len(items))
	for _, item := range items {
		var rec categoryRecord
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return nil, err
		}
		categories = append(categories, domain.HeritageCategory{ID: rec.ID, Name: rec.Name})
	}
	return categories, nil
}
