package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsv2dynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsv2types "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"warisin/internal/domain"
)

type programRecord struct {
	PK          string
	SK          string
	GSI1PK      string
	GSI1SK      string
	GSI2PK      string
	GSI2SK      string
	EntityType  string
	ID          string
	Title       string
	Description string
	Duration    string
	Location    string
	Criteria    string
	CategoryID  string
	ArtisanID   string
	StartDate   string
	EndDate     string
	IsOpen      bool
	MediaURLs   []string
	CreatedAt   string
	UpdatedAt   string
}

func newProgramRecord(p domain.Program) programRecord {
	createdAt := formatTime(p.CreatedAt)
	media := p.MediaURLs
	if media == nil {
		media = []string{}
	}
	return programRecord{
		PK:          programPK(p.ID),
		SK:          metaSK,
		GSI1PK:      artisanKey(p.ArtisanID),
		GSI1SK:      timeOrderedSK(createdAt, p.ID),
		GSI2PK:      allProgramsPK,
		GSI2SK:      timeOrderedSK(createdAt, p.ID),
		EntityType:  "PROGRAM",
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Duration:    p.Duration,
		Location:    p.Location,
		Criteria:    p.Criteria,
		CategoryID:  p.CategoryID,
		ArtisanID:   p.ArtisanID,
		StartDate:   formatOptionalTime(p.StartDate),
		EndDate:     formatOptionalTime(p.EndDate),
		IsOpen:      p.IsOpen,
		MediaURLs:   media,
		CreatedAt:   createdAt,
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func (r programRecord) toDomain() domain.Program {
	media := r.MediaURLs
	if media == nil {
		media = []string{}
	}
	return domain.Program{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Duration:    r.Duration,
		Location:    r.Location,
		Criteria:    r.Criteria,
		CategoryID:  r.CategoryID,
		ArtisanID:   r.ArtisanID,
		StartDate:   parseOptionalTime(r.StartDate),
		EndDate:     parseOptionalTime(r.EndDate),
		IsOpen:      r.IsOpen,
		MediaURLs:   media,
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
}

type ProgramRepository struct{ client *Client }

func NewProgramRepository(client *Client) *ProgramRepository {
	return &ProgramRepository{client: client}
}

func (r *ProgramRepository) Create(ctx context.Context, program domain.Program) error {
	err := r.client.put(ctx, "DynamoDB.PutProgram", newProgramRecord(program), notExists)
	if isConditionalCheckFailure(err) {
		return domain.ErrConflict
	}
	return err
}

// Update replaces the program item as long as nobody wrote it since it was
// read at prevUpdatedAt.
func (r *ProgramRepository) Update(ctx context.Context, program domain.Program, prevUpdatedAt time.Time) error {
	err := r.client.putIf(ctx, "DynamoDB.UpdateProgram", newProgramRecord(program), exists+" AND UpdatedAt = :prev",
		map[string]awsv2types.AttributeValue{
			":prev": &awsv2types.AttributeValueMemberS{Value: formatTime(prevUpdatedAt)},
		})
	if !isConditionalCheckFailure(err) {
		return err
	}
	if _, getErr := r.GetByID(ctx, program.ID); getErr != nil {
		return getErr
	}
	return domain.ErrConflict
}

func (r *ProgramRepository) GetByID(ctx context.Context, programID string) (domain.Program, error) {
	var rec programRecord
	found, err := r.client.get(ctx, "DynamoDB.GetProgram", programPK(programID), metaSK, &rec)
	if err != nil {
		return domain.Program{}, err
	}
	if !found {
		return domain.Program{}, domain.ErrNotFound
	}
	return rec.toDomain(), nil
}

func (r *ProgramRepository) List(ctx context.Context) ([]domain.Program, error) {
	return r.listByIndex(ctx, "DynamoDB.QueryPrograms", gsi2, "GSI2PK", allProgramsPK)
}

func (r *ProgramRepository) ListByArtisan(ctx context.Context, artisanID string) ([]domain.Program, error) {
	return r.listByIndex(ctx, "DynamoDB.QueryArtisanPrograms", gsi1, "GSI1PK", artisanKey(artisanID))
}

func (r *ProgramRepository) listByIndex(ctx context.Context, segment, index, attr, value string) ([]domain.Program, error) {
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
	programs := make([]domain.Program, 0, len(items))
	for _, item := range items {
		var rec programRecord
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return nil, err
		}
		programs = append(programs, rec.toDomain())
	}
	return programs, nil
}
