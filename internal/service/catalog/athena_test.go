package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakesync/internal/domain"
)

// fakeAthena implements athenaAPI with canned responses.
type fakeAthena struct {
	startIn  *athena.StartQueryExecutionInput
	startOut *athena.StartQueryExecutionOutput
	startErr error
	state    types.QueryExecutionState
	getErr   error
}

func (f *fakeAthena) StartQueryExecution(_ context.Context, params *athena.StartQueryExecutionInput, _ ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error) {
	f.startIn = params
	if f.startErr != nil {
		return nil, f.startErr
	}
	if f.startOut != nil {
		return f.startOut, nil
	}
	return &athena.StartQueryExecutionOutput{QueryExecutionId: aws.String("exec-1")}, nil
}

func (f *fakeAthena) GetQueryExecution(_ context.Context, _ *athena.GetQueryExecutionInput, _ ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &athena.GetQueryExecutionOutput{
		QueryExecution: &types.QueryExecution{
			Status: &types.QueryExecutionStatus{State: f.state},
		},
	}, nil
}

func TestAthenaEngine_StartQuery(t *testing.T) {
	fake := &fakeAthena{}
	engine := &AthenaEngine{client: fake, database: "catalogo", outputLocation: "s3://results/"}

	handle, err := engine.StartQuery(context.Background(), "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, domain.QueryHandle("exec-1"), handle)

	require.NotNil(t, fake.startIn)
	assert.Equal(t, "SELECT 1", aws.ToString(fake.startIn.QueryString))
	assert.Equal(t, "catalogo", aws.ToString(fake.startIn.QueryExecutionContext.Database))
	assert.Equal(t, "s3://results/", aws.ToString(fake.startIn.ResultConfiguration.OutputLocation))
	assert.NotEmpty(t, aws.ToString(fake.startIn.ClientRequestToken))
}

func TestAthenaEngine_StartQueryRejected(t *testing.T) {
	fake := &fakeAthena{startErr: errors.New("malformed sql")}
	engine := &AthenaEngine{client: fake, database: "catalogo", outputLocation: "s3://results/"}

	_, err := engine.StartQuery(context.Background(), "SELEC")
	assert.Error(t, err)
}

func TestAthenaEngine_QueryState(t *testing.T) {
	tests := []struct {
		name  string
		state types.QueryExecutionState
		want  domain.QueryStatus
	}{
		{name: "succeeded", state: types.QueryExecutionStateSucceeded, want: domain.StatusSucceeded},
		{name: "failed", state: types.QueryExecutionStateFailed, want: domain.StatusFailed},
		{name: "cancelled", state: types.QueryExecutionStateCancelled, want: domain.StatusCancelled},
		{name: "running", state: types.QueryExecutionStateRunning, want: domain.StatusRunning},
		{name: "queued_maps_to_running", state: types.QueryExecutionStateQueued, want: domain.StatusRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &AthenaEngine{client: &fakeAthena{state: tt.state}}
			got, err := engine.QueryState(context.Background(), "exec-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
