package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"main/model"
	"main/services"
	"main/utils"
)

// ErrCooldownActive is returned while the fixed post-call cooldown runs.
var ErrCooldownActive = errors.New("advisor cooldown active")

// Advisor modes
const (
	ModeAdvice             = "advice"
	ModePriorityOrder      = "priority_order"
	ModeDueDateSuggestions = "due_date_suggestions"
	ModeTodayPlan          = "today_plan"
	ModeDurationEstimates  = "duration_estimates"
)

type PrioritySuggestion struct {
	TaskID   int64          `json:"taskId"`
	Priority model.Priority `json:"priority"`
	Reason   string         `json:"reason,omitempty"`
}

type DueDateSuggestion struct {
	TaskID  int64  `json:"taskId"`
	DueDate string `json:"dueDate"` // dd/mm/yyyy HH:mm
	Reason  string `json:"reason,omitempty"`
}

type PlanItem struct {
	TaskID int64  `json:"taskId"`
	Order  int    `json:"order"`
	Slot   string `json:"slot,omitempty"` // e.g. "09:00-09:30"
}

type DurationEstimate struct {
	TaskID           int64 `json:"taskId"`
	EstimatedMinutes int   `json:"estimatedMinutes"`
}

// Suggestions is the structured payload the model is asked to answer with.
type Suggestions struct {
	PriorityOrder      []PrioritySuggestion `json:"priority_order,omitempty"`
	DueDateSuggestions []DueDateSuggestion  `json:"due_date_suggestions,omitempty"`
	TodayPlan          []PlanItem           `json:"today_plan,omitempty"`
	DurationEstimates  []DurationEstimate   `json:"duration_estimates,omitempty"`
}

type AdvisorResponse struct {
	Mode        string       `json:"mode"`
	Advice      string       `json:"advice,omitempty"` // markdown, mode=advice only
	Suggestions *Suggestions `json:"suggestions,omitempty"`
}

// AdvisorService calls the configured generative-text endpoint for planning
// help. Calls are fire-and-forget from the client's point of view and capped
// by a fixed cooldown armed after every attempt.
type AdvisorService struct {
	Board    *BoardService
	Settings *SettingsService
	Cooldown *services.CooldownGuard
	APIURL   string
	APIKey   string
	Client   *http.Client
}

func NewAdvisorService(board *BoardService, settings *SettingsService, cooldown *services.CooldownGuard, apiURL, apiKey string) *AdvisorService {
	return &AdvisorService{
		Board:    board,
		Settings: settings,
		Cooldown: cooldown,
		APIURL:   apiURL,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 45 * time.Second},
	}
}

func (svc *AdvisorService) Configured() bool {
	return svc.APIURL != ""
}

// GetAdvice asks the model for planning help in the given mode. The returned
// duration is the remaining cooldown when ErrCooldownActive is reported.
func (svc *AdvisorService) GetAdvice(ctx context.Context, mode string) (*AdvisorResponse, time.Duration, error) {
	if !svc.Configured() {
		return nil, 0, errors.New("AI advisor is not configured")
	}

	pending := svc.Board.Tasks("pending")
	if len(pending) == 0 {
		return nil, 0, errors.New("no pending tasks in this category")
	}

	if remaining := svc.Cooldown.Remaining(ctx); remaining > 0 {
		utils.TrackAdvisorRequest(mode, "cooldown")
		return nil, remaining, ErrCooldownActive
	}

	prompt, err := buildPrompt(mode, pending)
	if err != nil {
		return nil, 0, err
	}

	text, err := svc.generate(ctx, prompt)
	svc.Cooldown.Arm(ctx, svc.Settings.Get().AICooldown)
	if err != nil {
		utils.TrackAdvisorRequest(mode, "failure")
		return nil, 0, err
	}

	resp := &AdvisorResponse{Mode: mode}
	if mode == ModeAdvice {
		resp.Advice = text
		utils.TrackAdvisorRequest(mode, "success")
		return resp, 0, nil
	}

	var suggestions Suggestions
	if err := json.Unmarshal([]byte(stripFences(text)), &suggestions); err != nil {
		utils.TrackAdvisorRequest(mode, "failure")
		return nil, 0, fmt.Errorf("model returned malformed suggestions: %v", err)
	}
	// automated estimates land on multiples of five minutes
	for i := range suggestions.DurationEstimates {
		suggestions.DurationEstimates[i].EstimatedMinutes = roundToFive(suggestions.DurationEstimates[i].EstimatedMinutes)
	}
	resp.Suggestions = &suggestions
	utils.TrackAdvisorRequest(mode, "success")
	return resp, 0, nil
}

func taskListing(tasks []model.Task) string {
	var b strings.Builder
	for _, t := range tasks {
		due := t.DueDate
		if due == "" {
			due = "Không"
		}
		fmt.Fprintf(&b, "- [id=%d] %s (Ưu tiên: %s, Hạn: %s)\n", t.ID, t.Text, t.Priority, due)
	}
	return b.String()
}

func buildPrompt(mode string, tasks []model.Task) (string, error) {
	listing := taskListing(tasks)
	switch mode {
	case ModeAdvice:
		return "Bạn là một trợ lý năng suất. Dựa vào danh sách công việc sau đây, hãy đưa ra lời khuyên ngắn gọn, hữu ích bằng tiếng Việt để giúp tôi hoàn thành chúng. Sử dụng Markdown để định dạng (in đậm, gạch đầu dòng).\n\nCông việc:\n" + listing, nil
	case ModePriorityOrder:
		return "Xếp thứ tự ưu tiên cho các công việc sau. Trả lời CHỈ bằng JSON theo dạng {\"priority_order\":[{\"taskId\":<id>,\"priority\":\"high|medium|low\",\"reason\":\"...\"}]}.\n\nCông việc:\n" + listing, nil
	case ModeDueDateSuggestions:
		return "Đề xuất hạn chót hợp lý cho các công việc chưa có hạn. Trả lời CHỈ bằng JSON theo dạng {\"due_date_suggestions\":[{\"taskId\":<id>,\"dueDate\":\"dd/mm/yyyy HH:mm\",\"reason\":\"...\"}]}.\n\nCông việc:\n" + listing, nil
	case ModeTodayPlan:
		return "Lập kế hoạch làm việc hôm nay cho các công việc sau. Trả lời CHỈ bằng JSON theo dạng {\"today_plan\":[{\"taskId\":<id>,\"order\":<n>,\"slot\":\"HH:mm-HH:mm\"}]}.\n\nCông việc:\n" + listing, nil
	case ModeDurationEstimates:
		return "Ước lượng thời gian (phút) cho các công việc sau. Trả lời CHỈ bằng JSON theo dạng {\"duration_estimates\":[{\"taskId\":<id>,\"estimatedMinutes\":<n>}]}.\n\nCông việc:\n" + listing, nil
	}
	return "", fmt.Errorf("unknown advisor mode %q", mode)
}

// generate speaks the generateContent wire shape.
func (svc *AdvisorService) generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := svc.APIURL
	if svc.APIKey != "" {
		url += "?key=" + svc.APIKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := svc.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("AI API error: %d %s", resp.StatusCode, snippet)
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("AI API returned malformed JSON: %v", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("AI API returned no content")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences drops a ```json ... ``` wrapper models like to add.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func roundToFive(n int) int {
	if n <= 0 {
		return 0
	}
	rounded := ((n + 2) / 5) * 5
	if rounded == 0 {
		rounded = 5
	}
	return rounded
}

// Apply commits a reviewed suggestion set. Validation runs over the whole set
// before anything is touched: either every referenced task exists and every
// value is well-formed, or nothing is applied.
func (svc *AdvisorService) Apply(suggestions *Suggestions) error {
	if suggestions == nil {
		return errors.New("no suggestions to apply")
	}

	var updates []bulkUpdate
	for _, s := range suggestions.PriorityOrder {
		if !model.ValidPriority(s.Priority) {
			return fmt.Errorf("invalid priority %q for task %d", s.Priority, s.TaskID)
		}
		p := s.Priority
		updates = append(updates, bulkUpdate{taskID: s.TaskID, patch: TaskPatch{Priority: &p}})
	}
	for _, s := range suggestions.DueDateSuggestions {
		if _, err := model.ParseDueDate(s.DueDate); err != nil {
			return fmt.Errorf("invalid due date %q for task %d", s.DueDate, s.TaskID)
		}
		d := s.DueDate
		updates = append(updates, bulkUpdate{taskID: s.TaskID, patch: TaskPatch{DueDate: &d}})
	}
	for _, s := range suggestions.DurationEstimates {
		if s.EstimatedMinutes <= 0 {
			return fmt.Errorf("invalid duration for task %d", s.TaskID)
		}
		m := roundToFive(s.EstimatedMinutes)
		updates = append(updates, bulkUpdate{taskID: s.TaskID, patch: TaskPatch{EstimatedMinutes: &m}})
	}

	if err := svc.Board.applyBulk(updates); err != nil {
		return err
	}

	// a today_plan is an ordering: replay it through manual reordering
	if len(suggestions.TodayPlan) > 0 {
		plan := append([]PlanItem(nil), suggestions.TodayPlan...)
		for i := 0; i < len(plan); i++ {
			for j := i + 1; j < len(plan); j++ {
				if plan[j].Order < plan[i].Order {
					plan[i], plan[j] = plan[j], plan[i]
				}
			}
		}
		for _, item := range plan {
			if svc.Board.FindTask(item.TaskID) == nil {
				return fmt.Errorf("unknown task %d in today plan", item.TaskID)
			}
		}
		for _, item := range plan {
			if err := svc.Board.Reorder(item.TaskID, nil); err != nil {
				return err
			}
		}
	}
	return nil
}
