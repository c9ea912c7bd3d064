package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/gradeport/gradeport/internal/models"
)

// DynamoTables names the tables one deployment uses.
type DynamoTables struct {
	Submissions string
	Tiers       string
	Audit       string
}

// DefaultDynamoTables mirrors the deployed table names.
func DefaultDynamoTables() DynamoTables {
	return DynamoTables{
		Submissions: "card-submissions",
		Tiers:       "service-tiers",
		Audit:       "service-tiers-audit",
	}
}

// submissionEmailIndex is the GSI keyed on the submitter email.
const submissionEmailIndex = "EmailIndex"

// DynamoStore persists submissions, tiers, and audit records in DynamoDB.
// One value implements SubmissionStore, TierStore (method set split across
// wrapper types), and AuditLog.
type DynamoStore struct {
	client *dynamodb.Client
	tables DynamoTables
}

// NewDynamoStore wraps a DynamoDB client with the given table names.
func NewDynamoStore(client *dynamodb.Client, tables DynamoTables) *DynamoStore {
	return &DynamoStore{client: client, tables: tables}
}

// Submissions returns the submission-store view.
func (d *DynamoStore) Submissions() SubmissionStore { return &dynamoSubmissions{d} }

// Tiers returns the tier-store view.
func (d *DynamoStore) Tiers() TierStore { return &dynamoTiers{d} }

// AuditLog returns the audit-log view.
func (d *DynamoStore) AuditLog() AuditLog { return &dynamoAudit{d} }

type dynamoSubmissions struct{ *DynamoStore }

func (d *dynamoSubmissions) Put(ctx context.Context, sub *models.Submission) error {
	item, err := attributevalue.MarshalMap(sub)
	if err != nil {
		return fmt.Errorf("marshaling submission %s: %w", sub.SubmissionID, err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tables.Submissions),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("putting submission %s: %w", sub.SubmissionID, err)
	}
	return nil
}

func (d *dynamoSubmissions) Get(ctx context.Context, id string) (*models.Submission, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tables.Submissions),
		Key: map[string]types.AttributeValue{
			"submissionId": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting submission %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	var sub models.Submission
	if err := attributevalue.UnmarshalMap(out.Item, &sub); err != nil {
		return nil, fmt.Errorf("unmarshaling submission %s: %w", id, err)
	}
	return &sub, nil
}

func (d *dynamoSubmissions) List(ctx context.Context, companies []string, limit int, cursor string) (*SubmissionPage, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(d.tables.Submissions),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}
	if filter, names, values := companyFilter(companies); filter != "" {
		input.FilterExpression = aws.String(filter)
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}
	if cursor != "" {
		start, err := decodeCursor(cursor)
		if err != nil {
			return nil, fmt.Errorf("decoding cursor: %w", err)
		}
		input.ExclusiveStartKey = start
	}

	out, err := d.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}

	page := &SubmissionPage{Submissions: []models.Submission{}}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &page.Submissions); err != nil {
		return nil, fmt.Errorf("unmarshaling submissions: %w", err)
	}
	if len(out.LastEvaluatedKey) > 0 {
		page.Cursor, err = encodeCursor(out.LastEvaluatedKey)
		if err != nil {
			return nil, fmt.Errorf("encoding cursor: %w", err)
		}
	}
	return page, nil
}

func (d *dynamoSubmissions) SearchByEmail(ctx context.Context, email string, companies []string) ([]models.Submission, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(d.tables.Submissions),
		IndexName:              aws.String(submissionEmailIndex),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: strings.TrimSpace(email)},
		},
	}
	if filter, names, values := companyFilter(companies); filter != "" {
		input.FilterExpression = aws.String(filter)
		input.ExpressionAttributeNames = names
		for k, v := range values {
			input.ExpressionAttributeValues[k] = v
		}
	}

	out, err := d.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("searching submissions by email: %w", err)
	}
	var subs []models.Submission
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &subs); err != nil {
		return nil, fmt.Errorf("unmarshaling submissions: %w", err)
	}
	return subs, nil
}

// companyFilter builds a FilterExpression restricting results to the given
// companies. Empty expression for a nil slice.
func companyFilter(companies []string) (string, map[string]string, map[string]types.AttributeValue) {
	if companies == nil {
		return "", nil, nil
	}
	names := map[string]string{"#company": "gradingCompany"}
	values := map[string]types.AttributeValue{}
	placeholders := make([]string, 0, len(companies))
	for i, company := range companies {
		key := fmt.Sprintf(":company%d", i)
		values[key] = &types.AttributeValueMemberS{Value: strings.ToLower(company)}
		placeholders = append(placeholders, key)
	}
	return fmt.Sprintf("#company IN (%s)", strings.Join(placeholders, ", ")), names, values
}

func encodeCursor(key map[string]types.AttributeValue) (string, error) {
	plain := map[string]string{}
	for k, v := range key {
		s, ok := v.(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("unsupported cursor attribute type for %q", k)
		}
		plain[k] = s.Value
	}
	raw, err := json.Marshal(plain)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeCursor(cursor string) (map[string]types.AttributeValue, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, err
	}
	var plain map[string]string
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, err
	}
	key := make(map[string]types.AttributeValue, len(plain))
	for k, v := range plain {
		key[k] = &types.AttributeValueMemberS{Value: v}
	}
	return key, nil
}

type dynamoTiers struct{ *DynamoStore }

func (d *dynamoTiers) ListByCompany(ctx context.Context, company string) ([]models.ServiceTier, error) {
	out, err := d.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(d.tables.Tiers),
		KeyConditionExpression: aws.String("company = :company"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":company": &types.AttributeValueMemberS{Value: strings.ToLower(company)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("querying tiers for %s: %w", company, err)
	}
	var tiers []models.ServiceTier
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &tiers); err != nil {
		return nil, fmt.Errorf("unmarshaling tiers: %w", err)
	}
	sortTiers(tiers)
	return tiers, nil
}

func (d *dynamoTiers) ListAll(ctx context.Context) ([]models.ServiceTier, error) {
	var tiers []models.ServiceTier
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(d.tables.Tiers),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scanning tiers: %w", err)
		}
		var batch []models.ServiceTier
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshaling tiers: %w", err)
		}
		tiers = append(tiers, batch...)
	}
	sortTiers(tiers)
	return tiers, nil
}

func (d *dynamoTiers) Put(ctx context.Context, tier *models.ServiceTier) error {
	item, err := attributevalue.MarshalMap(tier)
	if err != nil {
		return fmt.Errorf("marshaling tier %s/%s: %w", tier.Company, tier.TierID, err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tables.Tiers),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("putting tier %s/%s: %w", tier.Company, tier.TierID, err)
	}
	return nil
}

func (d *dynamoTiers) Delete(ctx context.Context, company, tierID string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.tables.Tiers),
		Key: map[string]types.AttributeValue{
			"company": &types.AttributeValueMemberS{Value: strings.ToLower(company)},
			"tierId":  &types.AttributeValueMemberS{Value: strings.ToLower(tierID)},
		},
		ConditionExpression: aws.String("attribute_exists(company)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting tier %s/%s: %w", company, tierID, err)
	}
	return nil
}

type dynamoAudit struct{ *DynamoStore }

func (d *dynamoAudit) Append(ctx context.Context, rec *models.TierAuditRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshaling audit record %s: %w", rec.AuditID, err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tables.Audit),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("appending audit record %s: %w", rec.AuditID, err)
	}
	return nil
}
