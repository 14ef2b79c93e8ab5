package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/adaptiq/internal/bank"
	"github.com/abhisek/adaptiq/internal/recommend"
	"github.com/abhisek/adaptiq/internal/tutor"
	"github.com/abhisek/adaptiq/internal/validate"
)

const defaultCustomCount = 10

type Handler struct {
	tutor     *tutor.Tutor
	sessions  *registry
	validator *validate.Validator
	log       logrus.FieldLogger
}

func NewHandler(t *tutor.Tutor, v *validate.Validator, log logrus.FieldLogger) *Handler {
	return &Handler{tutor: t, sessions: newRegistry(t), validator: v, log: log}
}

// parse decodes an optional JSON body into req and validates it.
func (h *Handler) parse(c *fiber.Ctx, req any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "request body is not valid JSON")
		}
	}
	return h.validator.Struct(req)
}

func pathUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// GET /topics
func (h *Handler) Topics(c *fiber.Ctx) error {
	b := h.tutor.Bank()
	return NewSuccess("topics", TopicsView{
		Topics:       b.Topics(),
		Difficulties: b.Difficulties(),
		Total:        b.Len(),
	}).Send(c)
}

// GET /availability?session_id=
func (h *Handler) Availability(c *fiber.Ctx) error {
	var q sessionQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := h.validator.Struct(&q); err != nil {
		return err
	}
	if q.SessionID == "" {
		return NewSuccess("availability", h.tutor.Bank().Availability(nil)).Send(c)
	}

	var cells []bank.AvailabilityCell
	err := h.sessions.with(c.UserContext(), uuid.MustParse(q.SessionID), func(e *entry) error {
		cells = h.tutor.Availability(e.sess)
		return nil
	})
	if err != nil {
		return err
	}
	return NewSuccess("availability", cells).Send(c)
}

// POST /sessions
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	e, err := h.sessions.create(c.UserContext())
	if err != nil {
		return err
	}
	return NewCreated("session created", h.sessionView(e)).Send(c)
}

func (h *Handler) sessionView(e *entry) SessionView {
	return SessionView{
		ID:          e.sess.ID,
		StartedAt:   e.sess.StartedAt,
		QuizCount:   len(e.sess.History()),
		SeenCount:   e.sess.SeenCount(),
		Remaining:   h.tutor.Bank().RemainingCount(e.sess.Seen()),
		OpenQuizzes: len(e.quizzes),
	}
}

// withSession resolves :id and runs fn under the session lock.
func (h *Handler) withSession(c *fiber.Ctx, fn func(*entry) error) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	return h.sessions.with(c.UserContext(), id, fn)
}

// GET /sessions/:id
func (h *Handler) GetSession(c *fiber.Ctx) error {
	return h.withSession(c, func(e *entry) error {
		return NewSuccess("session", h.sessionView(e)).Send(c)
	})
}

// GET /sessions/:id/recommendation
func (h *Handler) Recommendation(c *fiber.Ctx) error {
	return h.withSession(c, func(e *entry) error {
		return NewSuccess("recommendation", h.tutor.Recommend(e.sess)).Send(c)
	})
}

// POST /sessions/:id/quizzes
func (h *Handler) StartQuiz(c *fiber.Ctx) error {
	var req StartQuizRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	return h.withSession(c, func(e *entry) error {
		if req.Topic == "" {
			q, rc, err := h.tutor.StartRecommended(e.sess)
			if err != nil {
				return err
			}
			e.quizzes[q.ID] = q
			return NewCreated("quiz started", quizView(q, &rc)).Send(c)
		}

		d, err := bank.ParseDifficulty(req.Difficulty)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		count := req.Count
		if count == 0 {
			count = defaultCustomCount
		}
		q, err := h.tutor.StartQuiz(e.sess, req.Topic, d, count)
		if err != nil {
			return err
		}
		e.quizzes[q.ID] = q
		return NewCreated("quiz started", quizView(q, nil)).Send(c)
	})
}

// POST /sessions/:id/quizzes/:quiz_id/submit
func (h *Handler) SubmitQuiz(c *fiber.Ctx) error {
	quizID, err := pathUUID(c, "quiz_id")
	if err != nil {
		return err
	}
	var req SubmitRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}
	return h.withSession(c, func(e *entry) error {
		q, ok := e.quizzes[quizID]
		if !ok {
			return tutor.ErrQuizNotFound
		}
		res, err := h.tutor.Submit(c.UserContext(), e.sess, q, req.Answers)
		if err != nil {
			return err
		}
		delete(e.quizzes, quizID)
		return NewSuccess("quiz submitted", ResultView{
			Result: res,
			Next:   h.tutor.Recommend(e.sess),
		}).Send(c)
	})
}

// POST /sessions/:id/reset
func (h *Handler) Reset(c *fiber.Ctx) error {
	return h.withSession(c, func(e *entry) error {
		if err := h.tutor.Reset(c.UserContext(), e.sess); err != nil {
			return err
		}
		clear(e.quizzes)
		return NewSuccess("progress reset", h.sessionView(e)).Send(c)
	})
}

type statsView struct {
	recommend.Stats
	Policy recommend.Policy `json:"policy"`
}

// GET /sessions/:id/stats
func (h *Handler) Stats(c *fiber.Ctx) error {
	return h.withSession(c, func(e *entry) error {
		return NewSuccess("stats", statsView{
			Stats:  h.tutor.Stats(e.sess),
			Policy: h.tutor.Policy(),
		}).Send(c)
	})
}

// GET /sessions/:id/prediction
func (h *Handler) Prediction(c *fiber.Ctx) error {
	return h.withSession(c, func(e *entry) error {
		p, ok := h.tutor.Predict(c.UserContext(), e.sess)
		if !ok {
			return NewSuccess("no prediction available", nil).Send(c)
		}
		return NewSuccess("prediction", p).Send(c)
	})
}
