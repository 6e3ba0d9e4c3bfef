package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"geocue/internal/domain/entity"
	mockusecase "geocue/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pushFixture struct {
	handler     *PushHandler
	transitions *mockusecase.TransitionUsecase
}

func newPushFixture() *pushFixture {
	transitions := &mockusecase.TransitionUsecase{}

	return &pushFixture{
		handler: &PushHandler{
			verifyPushAuth: false,
			logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			transitions:    transitions,
		},
		transitions: transitions,
	}
}

func (f *pushFixture) post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, f.handler.HandlePush(e.NewContext(req, rec)))

	return rec
}

func pushEnvelope(t *testing.T, event entity.RawEvent) string {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	envelope := map[string]any{
		"message": map[string]any{
			"data":      base64.StdEncoding.EncodeToString(payload),
			"messageId": "42",
		},
		"subscription": "projects/local/subscriptions/raw-events-sub",
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	return string(body)
}

func TestHandlePush_ValidEvent_AcksAndForwards(t *testing.T) {
	f := newPushFixture()
	event := entity.RawEvent{
		RegionID:   uuid.New(),
		Type:       entity.RawEnter,
		OccurredAt: time.Now().UTC().Truncate(time.Second),
	}

	f.transitions.On("HandleEvent", mock.Anything, mock.MatchedBy(func(got entity.RawEvent) bool {
		return got.RegionID == event.RegionID && got.Type == entity.RawEnter
	})).Return()

	rec := f.post(t, pushEnvelope(t, event))

	assert.Equal(t, http.StatusOK, rec.Code)
	f.transitions.AssertExpectations(t)
}

func TestHandlePush_MalformedEnvelope_AcksAndDrops(t *testing.T) {
	f := newPushFixture()

	rec := f.post(t, `{"message": nonsense`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.transitions.AssertNotCalled(t, "HandleEvent", mock.Anything, mock.Anything)
}

func TestHandlePush_UndecodableData_AcksAndDrops(t *testing.T) {
	f := newPushFixture()

	rec := f.post(t, `{"message": {"data": "%%%", "messageId": "42"}}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.transitions.AssertNotCalled(t, "HandleEvent", mock.Anything, mock.Anything)
}

func TestHandlePush_NonEventPayload_AcksAndDrops(t *testing.T) {
	f := newPushFixture()
	data := base64.StdEncoding.EncodeToString([]byte("not an event"))

	rec := f.post(t, `{"message": {"data": "`+data+`", "messageId": "42"}}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.transitions.AssertNotCalled(t, "HandleEvent", mock.Anything, mock.Anything)
}
