package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// SessionRecord is a persisted learner session.
type SessionRecord struct {
	ID        uuid.UUID
	StartedAt time.Time
	UpdatedAt time.Time
}

// SessionRepo manages session rows.
type SessionRepo interface {
	// Create inserts a new session.
	Create(ctx context.Context, id uuid.UUID, startedAt time.Time) error

	// Get returns a session by id, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*SessionRecord, error)

	// Latest returns the most recently updated session, or nil if none exist.
	Latest(ctx context.Context) (*SessionRecord, error)

	// Touch bumps the session's updated_at.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}

// QuizData is one submitted quiz as stored.
type QuizData struct {
	Sequence    int64
	Timestamp   time.Time
	Topic       string
	Difficulty  string
	Correct     int
	Total       int
	Accuracy    float64
	QuestionIDs []int
	Answers     []string
}

// HistoryRepo manages a session's quiz history.
type HistoryRepo interface {
	// AppendQuiz records a submitted quiz.
	AppendQuiz(ctx context.Context, sessionID uuid.UUID, q QuizData) error

	// ListQuizzes returns the session's quizzes, oldest first.
	ListQuizzes(ctx context.Context, sessionID uuid.UUID) ([]QuizData, error)

	// ClearQuizzes deletes the session's history.
	ClearQuizzes(ctx context.Context, sessionID uuid.UUID) error
}

// SeenRepo manages a session's seen question ids.
type SeenRepo interface {
	// MarkSeen adds ids. Ids already seen are ignored.
	MarkSeen(ctx context.Context, sessionID uuid.UUID, ids []int, at time.Time) error

	// ListSeen returns the seen ids in ascending order.
	ListSeen(ctx context.Context, sessionID uuid.UUID) ([]int, error)

	// ClearSeen forgets every seen id for the session.
	ClearSeen(ctx context.Context, sessionID uuid.UUID) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token use for one purpose or model.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
