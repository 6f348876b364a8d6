// Package catalog submits queries to the external catalog engine and waits
// for their completion.
package catalog

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/google/uuid"

	"lakesync/internal/domain"
)

// Compile-time check: AthenaEngine implements the catalog engine port.
var _ domain.CatalogEngine = (*AthenaEngine)(nil)

// athenaAPI is the slice of the Athena client the engine uses.
type athenaAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
}

// AthenaEngine adapts the Athena API to the domain.CatalogEngine port. All
// queries run against one logical database and persist results to one
// output location; both are fixed at construction.
type AthenaEngine struct {
	client         athenaAPI
	database       string
	outputLocation string
}

// NewAthenaEngine creates an engine bound to a catalog database and result
// output location (an s3:// URI).
func NewAthenaEngine(client *athena.Client, database, outputLocation string) *AthenaEngine {
	return &AthenaEngine{
		client:         client,
		database:       database,
		outputLocation: outputLocation,
	}
}

// StartQuery submits a query for asynchronous execution and returns the
// engine-assigned execution id as the handle. The request token makes a
// retried submission idempotent on the engine side.
func (e *AthenaEngine) StartQuery(ctx context.Context, query string) (domain.QueryHandle, error) {
	out, err := e.client.StartQueryExecution(ctx, &athena.StartQueryExecutionInput{
		QueryString:        aws.String(query),
		ClientRequestToken: aws.String(uuid.NewString()),
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: aws.String(e.database),
		},
		ResultConfiguration: &types.ResultConfiguration{
			OutputLocation: aws.String(e.outputLocation),
		},
	})
	if err != nil {
		return "", fmt.Errorf("start query execution: %w", err)
	}
	if out.QueryExecutionId == nil {
		return "", fmt.Errorf("start query execution: engine returned no execution id")
	}
	return domain.QueryHandle(*out.QueryExecutionId), nil
}

// QueryState returns the engine-side status of a submitted query.
func (e *AthenaEngine) QueryState(ctx context.Context, handle domain.QueryHandle) (domain.QueryStatus, error) {
	out, err := e.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
		QueryExecutionId: aws.String(string(handle)),
	})
	if err != nil {
		return "", fmt.Errorf("get query execution %s: %w", handle, err)
	}
	if out.QueryExecution == nil || out.QueryExecution.Status == nil {
		return "", fmt.Errorf("get query execution %s: engine returned no status", handle)
	}
	return mapState(out.QueryExecution.Status.State), nil
}

// mapState folds the engine's state machine into the pipeline's. QUEUED is
// still in flight, so it maps to RUNNING.
func mapState(state types.QueryExecutionState) domain.QueryStatus {
	switch state {
	case types.QueryExecutionStateSucceeded:
		return domain.StatusSucceeded
	case types.QueryExecutionStateFailed:
		return domain.StatusFailed
	case types.QueryExecutionStateCancelled:
		return domain.StatusCancelled
	default:
		return domain.StatusRunning
	}
}
