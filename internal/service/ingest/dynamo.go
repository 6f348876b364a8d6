package ingest

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"lakesync/internal/domain"
)

// Compile-time check: DynamoScanner implements the source scanner port.
var _ domain.SourceScanner = (*DynamoScanner)(nil)

// DynamoScanner walks a wide-column source table with the paginated Scan
// API and converts each page's attribute-typed items into plain rows.
type DynamoScanner struct {
	client dynamodb.ScanAPIClient
}

// NewDynamoScanner creates a scanner on top of a DynamoDB client.
func NewDynamoScanner(client dynamodb.ScanAPIClient) *DynamoScanner {
	return &DynamoScanner{client: client}
}

// Scan visits every page of collection in order, calling fn once per page.
// An error from fn stops the scan.
func (d *DynamoScanner) Scan(ctx context.Context, collection string, fn func(page int, rows []map[string]any) error) error {
	paginator := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(collection),
	})

	for page := 0; paginator.HasMorePages(); page++ {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("scan page %d of %s: %w", page, collection, err)
		}

		var rows []map[string]any
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &rows); err != nil {
			return fmt.Errorf("decode page %d of %s: %w", page, collection, err)
		}

		if err := fn(page, rows); err != nil {
			return err
		}
	}
	return nil
}
