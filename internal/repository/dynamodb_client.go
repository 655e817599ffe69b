package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"collections-agent/internal/domain"
)

// dynamodbAPI is the minimal DynamoDB interface required to load the directory.
// *dynamodb.Client satisfies it.
type dynamodbAPI interface {
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// LoadDynamoDirectory scans the borrower table once and returns an immutable
// directory ordered by borrower id. Items carry the attributes id (N), name,
// email, phone (S) and outstandingAmount (N).
func LoadDynamoDirectory(ctx context.Context, api dynamodbAPI, tableName string) (*StaticDirectory, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}

	var (
		borrowers []domain.Borrower
		startKey  map[string]types.AttributeValue
	)
	for {
		out, err := api.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(tableName),
			ExclusiveStartKey: startKey,
			ConsistentRead:    aws.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("repository: scan borrowers: %w", err)
		}
		for _, item := range out.Items {
			b, err := itemToBorrower(item)
			if err != nil {
				return nil, fmt.Errorf("repository: decode borrower item: %w", err)
			}
			borrowers = append(borrowers, b)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	sortByID(borrowers)
	return NewStaticDirectory(borrowers)
}

func itemToBorrower(item map[string]types.AttributeValue) (domain.Borrower, error) {
	id, err := intAttr(item, "id")
	if err != nil {
		return domain.Borrower{}, err
	}
	name, err := strAttr(item, "name")
	if err != nil {
		return domain.Borrower{}, err
	}
	email, _ := strAttr(item, "email") // allow empty
	phone, _ := strAttr(item, "phone") // allow empty
	amount, err := floatAttr(item, "outstandingAmount")
	if err != nil {
		return domain.Borrower{}, err
	}
	return domain.Borrower{
		ID:                id,
		Name:              name,
		Email:             email,
		Phone:             phone,
		OutstandingAmount: amount,
	}, nil
}

func strAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a string", key)
	}
	return s.Value, nil
}

func numAttr(item map[string]types.AttributeValue, key string) (string, error) {
	v, ok := item[key]
	if !ok {
		return "", fmt.Errorf("repository: missing attribute %q", key)
	}
	n, ok := v.(*types.AttributeValueMemberN)
	if !ok {
		return "", fmt.Errorf("repository: attribute %q is not a number", key)
	}
	return n.Value, nil
}

func intAttr(item map[string]types.AttributeValue, key string) (int, error) {
	raw, err := numAttr(item, key)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}

func floatAttr(item map[string]types.AttributeValue, key string) (float64, error) {
	raw, err := numAttr(item, key)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("repository: parse attribute %q: %w", key, err)
	}
	return parsed, nil
}
