package intake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pixelcraft/internal/domain"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(v1)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func submissionBody(t *testing.T, sub QuoteSubmission) string {
	t.Helper()
	b, err := json.Marshal(sub)
	require.NoError(t, err)
	return string(b)
}

func TestSubmitHandler_Created(t *testing.T) {
	leads := new(MockLeadStore)
	quotes := new(MockQuoteStore)
	notifier := new(MockNotifier)

	leads.On("Upsert", mock.Anything, mock.Anything).Return(&domain.Lead{ID: "lead-1"}, nil)
	quotes.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifier.On("DispatchQuote", mock.Anything).Return()

	r := newTestRouter(NewService(leads, quotes, nil, notifier, nil))
	w := postJSON(t, r, "/api/v1/quote-intake", submissionBody(t, validSubmission()))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp SubmissionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.False(t, domain.IsBackupID(resp.QuoteID))
	assert.Equal(t, "lead-1", resp.LeadID)
	assert.Empty(t, resp.Note)
}

func TestSubmitHandler_ValidationFailed(t *testing.T) {
	notifier := new(MockNotifier)
	r := newTestRouter(NewService(nil, nil, nil, notifier, nil))

	sub := validSubmission()
	sub.ScopeDetails = "way too short"
	sub.RefLinks = []string{"ftp://bad"}
	w := postJSON(t, r, "/api/v1/quote-intake", submissionBody(t, sub))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		OK      bool                `json:"ok"`
		Error   string              `json:"error"`
		Details map[string][]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Contains(t, resp.Details, "scope_details")
	assert.Contains(t, resp.Details, "ref_links")
	notifier.AssertNotCalled(t, "DispatchQuote", mock.Anything)
}

func TestSubmitHandler_DegradedModeStillSucceeds(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("DispatchQuote", mock.Anything).Return()

	r := newTestRouter(NewService(nil, nil, nil, notifier, nil))
	w := postJSON(t, r, "/api/v1/quote-intake", submissionBody(t, validSubmission()))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SubmissionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.True(t, domain.IsBackupID(resp.QuoteID))
	assert.Equal(t, "processed via backup system", resp.Note)
	assert.Contains(t, resp.Next, "/thank-you?qid=backup-")
}

func TestSubmitHandler_MalformedBody(t *testing.T) {
	notifier := new(MockNotifier)
	r := newTestRouter(NewService(nil, nil, nil, notifier, nil))

	w := postJSON(t, r, "/api/v1/quote-intake", "{not json")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["ok"])
}
