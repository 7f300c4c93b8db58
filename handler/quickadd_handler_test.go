package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type stubPersister struct{}

func (stubPersister) Load(ctx context.Context) (*model.Board, error) {
	return model.NewBoard(), nil
}

func (stubPersister) Save(ctx context.Context, board *model.Board) error { return nil }

type stubScheduler struct{}

func (stubScheduler) Schedule(task *model.Task) {}
func (stubScheduler) Cancel(taskID int64)       {}

func newHandlerBoard(t *testing.T) *usecase.BoardService {
	t.Helper()
	svc, err := usecase.NewBoardService(context.Background(), stubPersister{}, stubScheduler{})
	if err != nil {
		t.Fatalf("Failed to create board service: %v", err)
	}
	return svc
}

func postJSON(t *testing.T, body interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/quickadd", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestQuickAddHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("CreatesTask", func(t *testing.T) {
		svc := newHandlerBoard(t)

		w, c := postJSON(t, map[string]interface{}{"text": "Họp nhóm #work !cao mai 14:00"})
		QuickAddHandler(c, svc)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status code %d, got %d", http.StatusCreated, w.Code)
		}

		var response utils.Response
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		task, ok := response.Data.(map[string]interface{})
		if !ok {
			t.Fatal("Response data is not in expected format")
		}
		if task["text"] != "Họp nhóm" {
			t.Errorf("Expected parsed text %q, got %v", "Họp nhóm", task["text"])
		}
		if task["priority"] != "high" {
			t.Errorf("Expected high priority, got %v", task["priority"])
		}
	})

	t.Run("DuplicateReturnsConflict", func(t *testing.T) {
		svc := newHandlerBoard(t)
		if _, err := svc.AddTask(&model.Task{Text: "Mua sữa"}); err != nil {
			t.Fatalf("Failed to seed task: %v", err)
		}

		w, c := postJSON(t, map[string]interface{}{"text": "mua sữa"})
		QuickAddHandler(c, svc)

		if w.Code != http.StatusConflict {
			t.Fatalf("Expected status code %d, got %d", http.StatusConflict, w.Code)
		}

		var response utils.Response
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
		data, ok := response.Data.(map[string]interface{})
		if !ok {
			t.Fatal("Response data is not in expected format")
		}
		if data["existing"] == nil {
			t.Error("Expected the existing task in the conflict payload")
		}
	})

	t.Run("ConfirmMergeSucceeds", func(t *testing.T) {
		svc := newHandlerBoard(t)
		if _, err := svc.AddTask(&model.Task{Text: "Mua sữa"}); err != nil {
			t.Fatalf("Failed to seed task: %v", err)
		}

		w, c := postJSON(t, map[string]interface{}{"text": "mua sữa !cao", "confirmMerge": true})
		QuickAddHandler(c, svc)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
		}
		if got := len(svc.Tasks("all")); got != 1 {
			t.Errorf("Expected a single merged task, got %d", got)
		}
	})

	t.Run("MissingTextIsRejected", func(t *testing.T) {
		svc := newHandlerBoard(t)

		w, c := postJSON(t, map[string]interface{}{})
		QuickAddHandler(c, svc)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}
