package dbserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

var validate = validator.New()

// RegisterJob posts the finalized job record. A 2xx answer with status validation_failed is still an error.
func (c *DBServerClient) RegisterJob(ctx context.Context, job *types.CreateJobData) (*types.CreateJobResponse, error) {
	if err := validate.Struct(job); err != nil {
		return nil, pkgErrors.NewAPIError("job record failed pre-flight validation", 0, err).
			WithDetail("jobId", job.JobID)
	}

	var resp types.CreateJobResponse
	err := c.do(ctx, "create_job", call{
		method:  http.MethodPost,
		route:   "/api/jobs",
		user:    job.UserAddress,
		body:    []*types.CreateJobData{job},
		failMsg: "Failed to create job via API",
		once:    true,
	}, &resp)
	if err != nil {
		if e, ok := pkgErrors.As(err); ok {
			e.WithDetail("jobId", job.JobID)
		}
		return nil, err
	}

	if resp.Status == types.StatusValidationFailed {
		msg := resp.Message
		if msg == "" {
			msg = "backend rejected the job record"
		}
		e := pkgErrors.NewAPIError(msg, 0, nil).WithDetail("jobId", job.JobID)
		e.Code = pkgErrors.CodeBackendValidationFailed
		if len(resp.Errors) > 0 {
			e.WithDetail("errors", resp.Errors)
		}
		return nil, e
	}

	c.logger.Info("Job registered with API", "job_id", job.JobID, "user", job.UserAddress)
	return &resp, nil
}

// DeleteJob marks jobID deleted in the API
func (c *DBServerClient) DeleteJob(ctx context.Context, jobID, userAddress string) error {
	return c.do(ctx, "delete_job", call{
		method:  http.MethodPut,
		route:   fmt.Sprintf("/api/jobs/delete/%s", jobID),
		user:    userAddress,
		body:    struct{}{},
		failMsg: "Failed to delete job via API",
	}, nil)
}

type jobsEnvelope struct {
	Jobs []types.JobResponse `json:"jobs"`
}

// GetJobsByAPIKey lists the jobs created with the client's API key
func (c *DBServerClient) GetJobsByAPIKey(ctx context.Context) ([]types.JobResponse, error) {
	var out jobsEnvelope
	if err := c.do(ctx, "jobs_by_apikey", call{
		method:  http.MethodGet,
		route:   "/api/jobs/by-apikey",
		failMsg: "Failed to fetch jobs",
	}, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

// GetJobsByUser lists the jobs owned by userAddress
func (c *DBServerClient) GetJobsByUser(ctx context.Context, userAddress string) ([]types.JobResponse, error) {
	var out []types.JobResponse
	if err := c.do(ctx, "jobs_by_user", call{
		method:  http.MethodGet,
		route:   fmt.Sprintf("/api/jobs/user/%s", userAddress),
		user:    userAddress,
		failMsg: "Failed to fetch user jobs",
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DBServerClient) GetJobByID(ctx context.Context, jobID string) (*types.JobResponse, error) {
	var out types.JobResponse
	if err := c.do(ctx, "job_by_id", call{
		method:  http.MethodGet,
		route:   fmt.Sprintf("/api/jobs/%s", jobID),
		failMsg: "Failed to fetch job",
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTasksByJob lists the executed tasks of jobID
func (c *DBServerClient) GetTasksByJob(ctx context.Context, jobID string) ([]types.TaskData, error) {
	var out []types.TaskData
	if err := c.do(ctx, "tasks_by_job", call{
		method:  http.MethodGet,
		route:   fmt.Sprintf("/api/tasks/job/%s", jobID),
		failMsg: "Failed to fetch job tasks",
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetJobForUser returns jobID with its tasks, provided userAddress owns it
func (c *DBServerClient) GetJobForUser(ctx context.Context, userAddress, jobID string) (*types.JobWithTasks, error) {
	jobs, err := c.GetJobsByUser(ctx, userAddress)
	if err != nil {
		return nil, err
	}

	for _, job := range jobs {
		if job.JobData.JobID != jobID {
			continue
		}
		tasks, err := c.GetTasksByJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		return &types.JobWithTasks{Job: job, Tasks: tasks}, nil
	}
	return nil, pkgErrors.NewValidationError("jobId", fmt.Sprintf("job %s not found for user %s", jobID, userAddress))
}
