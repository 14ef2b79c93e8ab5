package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/bank/banktest"
	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/store"
	"github.com/abhisek/adaptiq/internal/tutor"
	"github.com/abhisek/adaptiq/internal/validate"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T, perPair int) *fiber.App {
	t.Helper()
	st, err := store.Open("file:" + filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	b := banktest.New(perPair, "Algorithms", "Data Structures", "Python", "SQL")
	tu := tutor.New(b, recommend.New(b.Topics()), tutor.WithRepos(tutor.ReposFrom(st)), tutor.WithLogger(log))
	return NewApp(Config{AppName: "test"}, NewHandler(tu, validate.New(), log), log)
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	code, env := call(t, app, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, code)
	return decode[SessionView](t, env.Data).ID.String()
}

func TestTopics(t *testing.T) {
	app := newTestApp(t, 2)
	code, env := call(t, app, http.MethodGet, "/api/v1/topics", nil)
	require.Equal(t, http.StatusOK, code)
	v := decode[TopicsView](t, env.Data)
	assert.Equal(t, []string{"Algorithms", "Data Structures", "Python", "SQL"}, v.Topics)
	assert.Equal(t, 24, v.Total)
}

func TestQuizFlow(t *testing.T) {
	app := newTestApp(t, 10)
	id := createSession(t, app)
	base := "/api/v1/sessions/" + id

	code, env := call(t, app, http.MethodGet, base+"/recommendation", nil)
	require.Equal(t, http.StatusOK, code)
	rc := decode[recommend.Reconciled](t, env.Data)
	assert.Equal(t, "Python", rc.Topic)
	assert.Equal(t, 5, rc.NumQuestions)

	code, env = call(t, app, http.MethodPost, base+"/quizzes", nil)
	require.Equal(t, http.StatusCreated, code)
	quiz := decode[QuizView](t, env.Data)
	require.Len(t, quiz.Questions, 5)
	require.NotNil(t, quiz.Recommendation)
	assert.NotContains(t, string(env.Data), `"answer"`, "answers must not leak")

	code, env = call(t, app, http.MethodPost, base+"/quizzes/"+quiz.ID.String()+"/submit",
		SubmitRequest{Answers: banktest.Answers(5, true)})
	require.Equal(t, http.StatusOK, code, env.Message)
	res := decode[ResultView](t, env.Data)
	assert.Equal(t, 5, res.Summary.Correct)
	assert.Equal(t, "medium", string(res.Next.Difficulty))

	code, _ = call(t, app, http.MethodPost, base+"/quizzes/"+quiz.ID.String()+"/submit", SubmitRequest{})
	assert.Equal(t, http.StatusNotFound, code, "quiz can be submitted once")

	code, env = call(t, app, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, code)
	sv := decode[SessionView](t, env.Data)
	assert.Equal(t, 1, sv.QuizCount)
	assert.Equal(t, 5, sv.SeenCount)

	code, env = call(t, app, http.MethodGet, base+"/stats", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"total_quizzes":1`)

	code, env = call(t, app, http.MethodGet, base+"/prediction", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"learner_type"`)

	code, env = call(t, app, http.MethodGet, "/api/v1/availability?session_id="+id, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"available":5`)

	code, env = call(t, app, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Zero(t, decode[SessionView](t, env.Data).SeenCount)
}

func TestCustomQuiz(t *testing.T) {
	app := newTestApp(t, 3)
	base := "/api/v1/sessions/" + createSession(t, app)

	tests := []struct {
		name     string
		body     any
		wantCode int
		check    func(*testing.T, envelope)
	}{
		{
			name:     "custom",
			body:     StartQuizRequest{Topic: "SQL", Difficulty: "hard", Count: 2},
			wantCode: http.StatusCreated,
			check: func(t *testing.T, env envelope) {
				q := decode[QuizView](t, env.Data)
				assert.Len(t, q.Questions, 2)
				assert.True(t, q.Custom)
			},
		},
		{
			name:     "bad difficulty",
			body:     StartQuizRequest{Topic: "SQL", Difficulty: "extreme"},
			wantCode: http.StatusBadRequest,
			check: func(t *testing.T, env envelope) {
				assert.Contains(t, string(env.Error), "difficulty")
			},
		},
		{
			name:     "missing difficulty",
			body:     StartQuizRequest{Topic: "SQL"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "count too large",
			body:     StartQuizRequest{Topic: "SQL", Difficulty: "easy", Count: 1000},
			wantCode: http.StatusBadRequest,
			check: func(t *testing.T, env envelope) {
				assert.Contains(t, string(env.Error), "count")
			},
		},
		{
			name:     "unknown topic",
			body:     StartQuizRequest{Topic: "Rust", Difficulty: "easy"},
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := call(t, app, http.MethodPost, base+"/quizzes", tt.body)
			assert.Equal(t, tt.wantCode, code, env.Message)
			assert.Equal(t, tt.wantCode < 300, env.Success)
			if tt.check != nil {
				tt.check(t, env)
			}
		})
	}
}

func TestNoQuestionsConflict(t *testing.T) {
	app := newTestApp(t, 1)
	base := "/api/v1/sessions/" + createSession(t, app)

	code, env := call(t, app, http.MethodPost, base+"/quizzes", StartQuizRequest{Topic: "SQL", Difficulty: "easy", Count: 1})
	require.Equal(t, http.StatusCreated, code)
	q := decode[QuizView](t, env.Data)
	code, _ = call(t, app, http.MethodPost, base+"/quizzes/"+q.ID.String()+"/submit", SubmitRequest{Answers: []string{"zzz"}})
	require.Equal(t, http.StatusOK, code, "malformed answers are just wrong")

	code, _ = call(t, app, http.MethodPost, base+"/quizzes", StartQuizRequest{Topic: "SQL", Difficulty: "easy", Count: 1})
	assert.Equal(t, http.StatusConflict, code)
}

func TestNotFoundAndBadIDs(t *testing.T) {
	app := newTestApp(t, 1)

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/api/v1/sessions/not-a-uuid", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/sessions/00000000-0000-0000-0000-000000000001", http.StatusNotFound},
		{http.MethodGet, "/api/v1/availability?session_id=nope", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/nowhere", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, env := call(t, app, tt.method, tt.path, nil)
			assert.Equal(t, tt.want, code)
			assert.False(t, env.Success)
		})
	}
}

func TestPredictionNullWithoutHistory(t *testing.T) {
	app := newTestApp(t, 1)
	base := "/api/v1/sessions/" + createSession(t, app)
	code, env := call(t, app, http.MethodGet, base+"/prediction", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "null", strings.TrimSpace(string(env.Data)))
}

func TestSessionSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	log := logrus.New()
	log.SetOutput(io.Discard)
	b := banktest.New(5, "Python", "SQL")

	open := func() (*fiber.App, func()) {
		st, err := store.Open("file:" + filepath.Join(dir, "api.db"))
		require.NoError(t, err)
		tu := tutor.New(b, recommend.New(b.Topics()), tutor.WithRepos(tutor.ReposFrom(st)), tutor.WithLogger(log))
		return NewApp(Config{}, NewHandler(tu, validate.New(), log), log), func() { st.Close() }
	}

	app, closeFn := open()
	id := createSession(t, app)
	code, env := call(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/quizzes", nil)
	require.Equal(t, http.StatusCreated, code)
	q := decode[QuizView](t, env.Data)
	code, _ = call(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/quizzes/"+q.ID.String()+"/submit", SubmitRequest{})
	require.Equal(t, http.StatusOK, code)
	closeFn()

	app, closeFn = open()
	defer closeFn()
	code, env = call(t, app, http.MethodGet, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, decode[SessionView](t, env.Data).QuizCount)
}
