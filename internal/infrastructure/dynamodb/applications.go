package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsv2dynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsv2types "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-xray-sdk-go/xray"
	"warisin/internal/domain"
)

const conditionalCheckFailed = "ConditionalCheckFailed"

type applicationRecord struct {
	PK          string
	SK          string
	GSI1PK      string
	GSI1SK      string
	GSI2PK      string
	GSI2SK      string
	EntityType  string
	ID          string
	ProgramID   string
	ApplicantID string
	Message     string
	Motivation  string
	CVURL       string
	Status      string
	CreatedAt   string
	UpdatedAt   string
}

// guardRecord makes (program, applicant) unique; it lives in the program's
// partition and points back at the application.
type guardRecord struct {
	PK            string
	SK            string
	EntityType    string
	ApplicationID string
}

func newApplicationRecord(a domain.Application) applicationRecord {
	createdAt := formatTime(a.CreatedAt)
	return applicationRecord{
		PK:          applicationPK(a.ID),
		SK:          metaSK,
		GSI1PK:      programPK(a.ProgramID),
		GSI1SK:      timeOrderedSK(createdAt, a.ID),
		GSI2PK:      applicantKey(a.ApplicantID),
		GSI2SK:      timeOrderedSK(createdAt, a.ID),
		EntityType:  "APPLICATION",
		ID:          a.ID,
		ProgramID:   a.ProgramID,
		ApplicantID: a.ApplicantID,
		Message:     a.Message,
		Motivation:  a.Motivation,
		CVURL:       a.CVURL,
		Status:      string(a.Status),
		CreatedAt:   createdAt,
		UpdatedAt:   formatTime(a.UpdatedAt),
	}
}

func (r applicationRecord) toDomain() domain.Application {
	return domain.Application{
		ID:          r.ID,
		ProgramID:   r.ProgramID,
		ApplicantID: r.ApplicantID,
		Message:     r.Message,
		Motivation:  r.Motivation,
		CVURL:       r.CVURL,
		Status:      domain.ApplicationStatus(r.Status),
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
}

type ApplicationRepository struct{ client *Client }

func NewApplicationRepository(client *Client) *ApplicationRepository {
	return &ApplicationRepository{client: client}
}

// Create runs one transaction: the program must exist and be open, and
// neither the application nor the (program, applicant) guard may exist yet.
func (r *ApplicationRepository) Create(ctx context.Context, app domain.Application) error {
	check := awsv2types.TransactWriteItem{ConditionCheck: &awsv2types.ConditionCheck{
		TableName:           aws.String(r.client.tableName),
		Key:                 key(programPK(app.ProgramID), metaSK),
		ConditionExpression: aws.String("attribute_exists(PK) AND IsOpen = :open"),
		ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
			":open": &awsv2types.AttributeValueMemberBOOL{Value: true},
		},
	}}
	appItem, err := r.client.transactPut(newApplicationRecord(app), notExists)
	if err != nil {
		return err
	}
	guard, err := r.client.transactPut(guardRecord{
		PK:            programPK(app.ProgramID),
		SK:            applicantKey(app.ApplicantID),
		EntityType:    "APPLICATION_GUARD",
		ApplicationID: app.ID,
	}, notExists)
	if err != nil {
		return err
	}
	err = r.client.transact(ctx, "DynamoDB.CreateApplication", check, appItem, guard)
	reasons := cancellationReasons(err)
	if reasons == nil {
		return err
	}
	switch {
	case len(reasons) > 0 && reasons[0] == conditionalCheckFailed:
		return r.programRejection(ctx, app.ProgramID)
	case len(reasons) > 2 && reasons[2] == conditionalCheckFailed:
		return domain.ErrDuplicateApplication
	default:
		return domain.ErrConflict
	}
}

// programRejection tells a missing program apart from a closed one after the
// program condition failed.
func (r *ApplicationRepository) programRejection(ctx context.Context, programID string) error {
	var rec programRecord
	found, err := r.client.get(ctx, "DynamoDB.GetProgram", programPK(programID), metaSK, &rec)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return domain.ErrNotAcceptingApplications
}

func (r *ApplicationRepository) GetByID(ctx context.Context, appID string) (domain.Application, error) {
	var rec applicationRecord
	found, err := r.client.get(ctx, "DynamoDB.GetApplication", applicationPK(appID), metaSK, &rec)
	if err != nil {
		return domain.Application{}, err
	}
	if !found {
		return domain.Application{}, domain.ErrNotFound
	}
	return rec.toDomain(), nil
}

func (r *ApplicationRepository) FindByProgramAndApplicant(ctx context.Context, programID, applicantID string) (domain.Application, error) {
	var guard guardRecord
	found, err := r.client.get(ctx, "DynamoDB.GetApplicationGuard", programPK(programID), applicantKey(applicantID), &guard)
	if err != nil {
		return domain.Application{}, err
	}
	if !found {
		return domain.Application{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, guard.ApplicationID)
}

func (r *ApplicationRepository) ListByProgram(ctx context.Context, programID string) ([]domain.Application, error) {
	return r.listByIndex(ctx, "DynamoDB.QueryProgramApplications", gsi1, "GSI1PK", programPK(programID))
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	return r.listByIndex(ctx, "DynamoDB.QueryApplicantApplications", gsi2, "GSI2PK", applicantKey(applicantID))
}

func (r *ApplicationRepository) listByIndex(ctx context.Context, segment, index, attr, value string) ([]domain.Application, error) {
	items, err := r.client.query(ctx, segment, &awsv2dynamodb.QueryInput{
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(attr + " = :pk"),
		ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
			":pk": &awsv2types.AttributeValueMemberS{Value: value},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	apps := make([]domain.Application, 0, len(items))
	for _, item := range items {
		var rec applicationRecord
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return nil, err
		}
		apps = append(apps, rec.toDomain())
	}
	return apps, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, app domain.Application, from domain.ApplicationStatus) error {
	return xray.Capture(ctx, "DynamoDB.UpdateApplicationStatus", func(ctx context.Context) error {
		_, err := r.client.db.UpdateItem(ctx, &awsv2dynamodb.UpdateItemInput{
			TableName:        aws.String(r.client.tableName),
			Key:              key(applicationPK(app.ID), metaSK),
			UpdateExpression: aws.String("SET #s = :to, UpdatedAt = :u"),
			ExpressionAttributeNames: map[string]string{
				"#s": "Status",
			},
			ExpressionAttributeValues: map[string]awsv2types.AttributeValue{
				":to":   &awsv2types.AttributeValueMemberS{Value: string(app.Status)},
				":from": &awsv2types.AttributeValueMemberS{Value: string(from)},
				":u":    &awsv2types.AttributeValueMemberS{Value: formatTime(app.UpdatedAt)},
			},
			ConditionExpression: aws.String("attribute_exists(PK) AND #s = :from"),
		})
		if isConditionalCheckFailure(err) {
			return domain.ErrConflict
		}
		return err
	})
}
