package dbserver

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	pkgErrors "github.com/trigg3rX/triggerx-go-sdk/pkg/errors"
	httppkg "github.com/trigg3rX/triggerx-go-sdk/pkg/http"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/logging"
	"github.com/trigg3rX/triggerx-go-sdk/pkg/types"
)

const testAPIKey = "test-key"

func newTestClient(t *testing.T, router *mux.Router) *DBServerClient {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	httpClient, err := httppkg.NewHTTPClient(httppkg.DefaultHTTPRetryConfig(), logging.NewNoOpLogger())
	require.NoError(t, err)

	c, err := NewDBServerClient(logging.NewNoOpLogger(), srv.URL+"/", testAPIKey, httpClient)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func validJobData() *types.CreateJobData {
	return &types.CreateJobData{
		JobID:                 "42",
		UserAddress:           "0x00000000000000000000000000000000000000ee",
		EtherBalance:          big.NewInt(1000),
		TokenBalance:          big.NewInt(1000),
		JobTitle:              "ping",
		TaskDefinitionID:      1,
		TimeFrame:             36,
		JobCostPrediction:     0.002,
		Timezone:              "UTC",
		CreatedChainID:        "84532",
		ScheduleType:          "interval",
		TimeInterval:          33,
		TargetChainID:         "84532",
		TargetContractAddress: "0x00000000000000000000000000000000000000aa",
		TargetFunction:        "ping()",
		ABI:                   "[]",
		ArgType:               types.ArgTypeStatic,
		IsImua:                true,
	}
}

func TestRegisterJob_PostsArrayWithHeaders(t *testing.T) {
	var body []map[string]any
	var apiKey, traceID string
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("X-API-KEY")
		traceID = r.Header.Get("X-Trace-ID")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		writeJSON(w, http.StatusOK, map[string]any{"user_id": 9, "job_ids": []string{"42"}})
	}).Methods(http.MethodPost)
	c := newTestClient(t, router)

	resp, err := c.RegisterJob(context.Background(), validJobData())

	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, resp.JobIDs)
	assert.Equal(t, testAPIKey, apiKey)
	assert.Regexp(t, `^post-jobs-0000ee-[0-9a-f]{8}$`, traceID)
	require.Len(t, body, 1)
	assert.Equal(t, "42", body[0]["job_id"])
	assert.Equal(t, float64(1000), body[0]["ether_balance"])
}

func TestRegisterJob_ValidationFailedAck_ReturnsBackendValidationError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "validation_failed",
			"message": "time_interval too small",
			"errors":  map[string]any{"time_interval": "min 30"},
		})
	}).Methods(http.MethodPost)
	c := newTestClient(t, router)

	_, err := c.RegisterJob(context.Background(), validJobData())

	require.ErrorIs(t, err, pkgErrors.ErrAPI)
	e, _ := pkgErrors.As(err)
	assert.Equal(t, pkgErrors.CodeBackendValidationFailed, e.Code)
	assert.Equal(t, "time_interval too small", e.Message)
	assert.Contains(t, e.Details, "errors")
}

func TestRegisterJob_ServerError_ReturnsAPIErrorWithStatus(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad job"})
	}).Methods(http.MethodPost)
	c := newTestClient(t, router)

	_, err := c.RegisterJob(context.Background(), validJobData())

	require.ErrorIs(t, err, pkgErrors.ErrAPI)
	e, _ := pkgErrors.As(err)
	assert.Equal(t, "HTTP_400", e.Code)
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus)
	assert.Contains(t, e.Details["response"], "bad job")
}

func TestRegisterJob_ServiceUnavailable_SentOnce(t *testing.T) {
	var calls int32
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "busy"})
	}).Methods(http.MethodPost)
	c := newTestClient(t, router)

	_, err := c.RegisterJob(context.Background(), validJobData())

	require.ErrorIs(t, err, pkgErrors.ErrAPI)
	e, _ := pkgErrors.As(err)
	assert.Equal(t, "HTTP_503", e.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRegisterJob_Unauthorized_ReturnsAuthenticationError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}).Methods(http.MethodPost)
	c := newTestClient(t, router)

	_, err := c.RegisterJob(context.Background(), validJobData())

	assert.ErrorIs(t, err, pkgErrors.ErrAuthentication)
}

func TestRegisterJob_InvalidRecord_NotSent(t *testing.T) {
	called := false
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) { called = true })
	c := newTestClient(t, router)

	job := validJobData()
	job.UserAddress = "not-an-address"
	_, err := c.RegisterJob(context.Background(), job)

	assert.ErrorIs(t, err, pkgErrors.ErrAPI)
	assert.False(t, called)
}

func TestGetFees_SendsQueryParameters(t *testing.T) {
	var query map[string]string
	router := mux.NewRouter()
	router.HandleFunc("/api/fees", func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		writeJSON(w, http.StatusOK, map[string]any{"current_total_fee": "123", "total_fee": 500})
	}).Methods(http.MethodGet)
	c := newTestClient(t, router)

	resp, err := c.GetFees(context.Background(), types.FeeQuery{
		TaskDefinitionID:      1,
		TargetChainID:         "84532",
		TargetContractAddress: "0xaa",
		TargetFunction:        "ping()",
		ABI:                   "[]",
		Args:                  `["1"]`,
	})

	require.NoError(t, err)
	assert.Equal(t, "123", resp.PerExecution().String())
	assert.Equal(t, "500", resp.MaxTotal().String())
	assert.Equal(t, "1", query["task_definition_id"])
	assert.Equal(t, `["1"]`, query["args"])
	assert.Contains(t, query, "ipfs_url")
}

func TestGetFees_TotalFeeOnly_UsedAsPerExecutionFee(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/fees", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"total_fee": "7"})
	})
	c := newTestClient(t, router)

	resp, err := c.GetFees(context.Background(), types.FeeQuery{})

	require.NoError(t, err)
	assert.Equal(t, "7", resp.PerExecution().String())
}

func TestGetFees_MissingFee_ReturnsAPIError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/fees", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	c := newTestClient(t, router)

	_, err := c.GetFees(context.Background(), types.FeeQuery{})

	assert.ErrorIs(t, err, pkgErrors.ErrAPI)
}

func TestDeleteJob_UsesPut(t *testing.T) {
	var id string
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs/delete/{id}", func(w http.ResponseWriter, r *http.Request) {
		id = mux.Vars(r)["id"]
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodPut)
	c := newTestClient(t, router)

	require.NoError(t, c.DeleteJob(context.Background(), "17", ""))
	assert.Equal(t, "17", id)
}

func TestGetJobForUser_CombinesJobAndTasks(t *testing.T) {
	user := "0x00000000000000000000000000000000000000ee"
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs/user/{address}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"job_data": map[string]any{"job_id": "1"}},
			{"job_data": map[string]any{"job_id": "2", "job_title": "second"}},
		})
	})
	router.HandleFunc("/api/tasks/job/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"task_id": 5, "task_status": "completed"}})
	})
	c := newTestClient(t, router)

	res, err := c.GetJobForUser(context.Background(), user, "2")
	require.NoError(t, err)
	assert.Equal(t, "second", res.Job.JobData.JobTitle)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, int64(5), res.Tasks[0].TaskID)

	_, err = c.GetJobForUser(context.Background(), user, "3")
	assert.ErrorIs(t, err, pkgErrors.ErrValidation)
}

func TestGetJobsByAPIKey_And_GetUser(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/jobs/by-apikey", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"jobs": []map[string]any{{"job_data": map[string]any{"job_id": "8"}}}})
	})
	router.HandleFunc("/api/users/{address}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user_address": mux.Vars(r)["address"], "total_jobs": 3})
	})
	c := newTestClient(t, router)

	jobs, err := c.GetJobsByAPIKey(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "8", jobs[0].JobData.JobID)

	u, err := c.GetUser(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.TotalJobs)
}

func TestHealthCheck_WithMockClient(t *testing.T) {
	m := new(httppkg.MockHTTPClient)
	m.On("DoJSON", mock.Anything, mock.MatchedBy(func(r httppkg.Request) bool {
		return r.URL == "https://api.example/api/health" && r.Headers["X-API-KEY"] == testAPIKey
	}), mock.Anything).Return(nil, nil)

	c, err := NewDBServerClient(logging.NewNoOpLogger(), "https://api.example", testAPIKey, m)
	require.NoError(t, err)

	assert.NoError(t, c.HealthCheck(context.Background()))
	m.AssertExpectations(t)
}

func TestTraceID_Format(t *testing.T) {
	tests := []struct {
		method, route, user string
		pattern             string
	}{
		{"GET", "/api/jobs/user/0x1234567890abcdef", "0x1234567890abcdef", `^get-jobsuser-abcdef-[0-9a-f]{8}$`},
		{"post", "/api/jobs", "", `^post-jobs-000000-[0-9a-f]{8}$`},
		{"put", "/api/jobs/delete/12", "0xAbCdEf123456", `^put-jobsdelete12-123456-[0-9a-f]{8}$`},
		{"get", "/api/some_very-long/route/that/exceeds", "", `^get-someverylongroutetha-000000-[0-9a-f]{8}$`},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			id := TraceID(tt.method, tt.route, tt.user)
			assert.Regexp(t, regexp.MustCompile(tt.pattern), id)
		})
	}
}
