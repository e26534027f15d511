package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/MohamedBenMassouda/Survey/models"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestSurveyService(store *stubStore) *SurveyService {
	svc := NewSurveyService(store)
	svc.now = func() time.Time { return testNow }
	return svc
}

func seedSurvey(store *stubStore, status string, questions ...models.Question) *models.Survey {
	survey := &models.Survey{
		Title:     "Customer Feedback",
		Status:    status,
		Questions: questions,
		CreatedAt: testNow.Add(-24 * time.Hour),
	}
	if err := store.CreateSurvey(survey); err != nil {
		panic(err)
	}
	return survey
}

func textQuestion(required bool) models.Question {
	return models.Question{QuestionText: "Any comments?", Type: models.QuestionTypeText, IsRequired: required, DisplayOrder: 1}
}

func choiceQuestion(optionTexts ...string) models.Question {
	q := models.Question{QuestionText: "Pick one", Type: models.QuestionTypeMultipleChoice, DisplayOrder: 2}
	for i, text := range optionTexts {
		q.Options = append(q.Options, models.QuestionOption{OptionText: text, DisplayOrder: i + 1})
	}
	return q
}

func TestCreateSurveyRequiresTitle(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)

	_, err := svc.Create(CreateSurveyRequest{Title: "   "}, uuid.New())
	if KindOf(err) != KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
	if len(store.surveys) != 0 {
		t.Errorf("nothing should be persisted, got %d surveys", len(store.surveys))
	}
}

func TestCreateSurveyRejectsInvertedDates(t *testing.T) {
	svc := newTestSurveyService(newStubStore())

	start := testNow
	end := testNow.Add(-time.Hour)
	_, err := svc.Create(CreateSurveyRequest{Title: "T", StartDate: &start, EndDate: &end}, uuid.New())
	if KindOf(err) != KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateSurveyRejectsUnknownQuestionType(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)

	_, err := svc.Create(CreateSurveyRequest{
		Title: "T",
		Questions: []CreateQuestionRequest{
			{QuestionText: "fine", Type: models.QuestionTypeText},
			{QuestionText: "broken", Type: "essay"},
		},
	}, uuid.New())
	if KindOf(err) != KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
	if len(store.surveys) != 0 {
		t.Error("partial survey must not be persisted")
	}
}

func TestCreateSurveyDefaultsAndOptions(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)

	three := 3
	summary, err := svc.Create(CreateSurveyRequest{
		Title: "  Padded Title  ",
		Questions: []CreateQuestionRequest{
			{QuestionText: "first", Type: models.QuestionTypeText, Options: []CreateOptionRequest{{OptionText: "ignored"}}},
			{QuestionText: "second", Type: models.QuestionTypeMultipleChoice, DisplayOrder: &three, Options: []CreateOptionRequest{{OptionText: "a"}, {OptionText: "b"}}},
		},
	}, uuid.New())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if summary.Title != "Padded Title" {
		t.Errorf("title = %q, want trimmed", summary.Title)
	}
	if summary.Status != models.SurveyStatusDraft {
		t.Errorf("status = %q, want draft", summary.Status)
	}
	if summary.QuestionCount != 2 {
		t.Errorf("question count = %d, want 2", summary.QuestionCount)
	}

	stored := store.surveys[summary.ID]
	if got := stored.Questions[0].DisplayOrder; got != 1 {
		t.Errorf("question 1 display order = %d, want 1", got)
	}
	if got := stored.Questions[1].DisplayOrder; got != 3 {
		t.Errorf("question 2 display order = %d, want 3", got)
	}
	if len(stored.Questions[0].Options) != 0 {
		t.Error("text question must not keep options")
	}
	if len(stored.Questions[1].Options) != 2 {
		t.Errorf("choice question options = %d, want 2", len(stored.Questions[1].Options))
	}
}

func TestGetSurveyNotFound(t *testing.T) {
	svc := newTestSurveyService(newStubStore())
	_, err := svc.Get(uuid.New())
	if KindOf(err) != KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestUpdateSurveyPartial(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)
	survey := seedSurvey(store, models.SurveyStatusDraft)
	survey.Description = "keep me"
	store.UpdateSurvey(survey)

	title := "Renamed"
	if _, err := svc.Update(survey.ID, UpdateSurveyRequest{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored := store.surveys[survey.ID]
	if stored.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", stored.Title)
	}
	if stored.Description != "keep me" {
		t.Errorf("description = %q, untouched fields must survive", stored.Description)
	}
	if !stored.UpdatedAt.Equal(testNow) {
		t.Errorf("updated_at = %v, want %v", stored.UpdatedAt, testNow)
	}
}

func TestUpdateSurveyRejectsMergedInvertedDates(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)
	survey := seedSurvey(store, models.SurveyStatusDraft)
	start := testNow
	survey.StartDate = &start
	store.UpdateSurvey(survey)

	end := testNow.Add(-time.Hour)
	_, err := svc.Update(survey.ID, UpdateSurveyRequest{EndDate: &end})
	if KindOf(err) != KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestDeleteSurveyNotFound(t *testing.T) {
	svc := newTestSurveyService(newStubStore())
	if err := svc.Delete(uuid.New()); KindOf(err) != KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestPublishRequiresDraft(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)
	survey := seedSurvey(store, models.SurveyStatusPublished, textQuestion(false))

	_, err := svc.Publish(survey.ID)
	if KindOf(err) != KindConflict {
		t.Fatalf("err = %v, want conflict", err)
	}

	closed := seedSurvey(store, models.SurveyStatusClosed, textQuestion(false))
	if _, err := svc.Publish(closed.ID); KindOf(err) != KindConflict {
		t.Fatalf("closed: err = %v, want conflict", err)
	}
}

func TestPublishRequiresQuestions(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)
	survey := seedSurvey(store, models.SurveyStatusDraft)

	_, err := svc.Publish(survey.ID)
	if KindOf(err) != KindValidation {
		t.Fatalf("err = %v, want validation", err)
	}
	if store.surveys[survey.ID].Status != models.SurveyStatusDraft {
		t.Error("failed publish must leave the survey draft")
	}
}

func TestPublishStampsStartDateWhenUnset(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)
	survey := seedSurvey(store, models.SurveyStatusDraft, textQuestion(false))

	summary, err := svc.Publish(survey.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if summary.Status != models.SurveyStatusPublished {
		t.Errorf("status = %q, want published", summary.Status)
	}

	stored := store.surveys[survey.ID]
	if stored.StartDate == nil || !stored.StartDate.Equal(testNow) {
		t.Errorf("start date = %v, want %v", stored.StartDate, testNow)
	}
}

func TestPublishKeepsExistingStartDate(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)
	survey := seedSurvey(store, models.SurveyStatusDraft, textQuestion(false))
	scheduled := testNow.Add(48 * time.Hour)
	survey.StartDate = &scheduled
	store.UpdateSurvey(survey)

	if _, err := svc.Publish(survey.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := store.surveys[survey.ID].StartDate; got == nil || !got.Equal(scheduled) {
		t.Errorf("start date = %v, want the scheduled %v", got, scheduled)
	}
}

func TestCloseRequiresPublished(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)

	draft := seedSurvey(store, models.SurveyStatusDraft, textQuestion(false))
	if _, err := svc.Close(draft.ID); KindOf(err) != KindConflict {
		t.Fatalf("draft: err = %v, want conflict", err)
	}

	published := seedSurvey(store, models.SurveyStatusPublished, textQuestion(false))
	summary, err := svc.Close(published.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if summary.Status != models.SurveyStatusClosed {
		t.Errorf("status = %q, want closed", summary.Status)
	}

	// Closed is terminal.
	if _, err := svc.Close(published.ID); KindOf(err) != KindConflict {
		t.Fatalf("reclose: err = %v, want conflict", err)
	}
}

func TestListNormalizesQuery(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)
	for i := 0; i < 3; i++ {
		seedSurvey(store, models.SurveyStatusDraft)
	}

	page, err := svc.List(SurveyQuery{Page: 0, PageSize: 0})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.PageNumber != 1 || page.PageSize != DefaultPageSize {
		t.Errorf("page = %d size = %d, want normalized 1/%d", page.PageNumber, page.PageSize, DefaultPageSize)
	}
	if page.TotalCount != 3 || len(page.Items) != 3 {
		t.Errorf("total = %d items = %d, want 3/3", page.TotalCount, len(page.Items))
	}
}

func TestListPublishedFiltersByWindow(t *testing.T) {
	store := newStubStore()
	svc := newTestSurveyService(store)

	seedSurvey(store, models.SurveyStatusDraft)
	active := seedSurvey(store, models.SurveyStatusPublished)

	ended := seedSurvey(store, models.SurveyStatusPublished)
	past := testNow.Add(-time.Hour)
	ended.EndDate = &past
	store.UpdateSurvey(ended)

	page, err := svc.ListPublished(1, 10)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != active.ID {
		t.Errorf("items = %+v, want only the active survey", page.Items)
	}
}
