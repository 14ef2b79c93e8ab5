package recommend

import (
	"fmt"
	"reflect"

	"github.com/spf13/viper"

	"github.com/abhisek/adaptiq/internal/validate"
)

// Policy holds every threshold and count rule the decision tree uses.
type Policy struct {
	// DefaultTopic is served for the first quiz of a session.
	DefaultTopic  string `json:"default_topic" mapstructure:"default_topic" validate:"required"`
	FirstQuizSize int    `json:"first_quiz_size" mapstructure:"first_quiz_size" validate:"gt=0"`

	// StrugglingBelow and AdvancedAtOrAbove split the last quiz's accuracy
	// into the struggling, moderate and advanced branches.
	StrugglingBelow   float64 `json:"struggling_below" mapstructure:"struggling_below" validate:"gt=0,ltfield=AdvancedAtOrAbove"`
	AdvancedAtOrAbove float64 `json:"advanced_at_or_above" mapstructure:"advanced_at_or_above" validate:"lte=1"`

	// A topic whose mean accuracy is below StrugglingTopicBelow counts as a
	// struggling topic for the confidence-building override.
	StrugglingTopicBelow  float64 `json:"struggling_topic_below" mapstructure:"struggling_topic_below" validate:"gt=0,lte=1"`
	ConfidenceTopicsAbove int     `json:"confidence_topics_above" mapstructure:"confidence_topics_above" validate:"gte=0"`
	ConfidenceMinHistory  int     `json:"confidence_min_history" mapstructure:"confidence_min_history" validate:"gte=1"`
	ConfidenceQuizSize    int     `json:"confidence_quiz_size" mapstructure:"confidence_quiz_size" validate:"gt=0"`

	MaxQuestions    int `json:"max_questions" mapstructure:"max_questions" validate:"gt=0"`
	MasteryQuizSize int `json:"mastery_quiz_size" mapstructure:"mastery_quiz_size" validate:"gt=0,ltefield=MaxQuestions"`

	// A streak is the run of struggling easy quizzes on the last topic.
	// From StreakLong on the quiz shrinks to StreakQuizSize; from
	// StreakShort it drops by StreakDrop, never below StreakFloor. A single
	// struggling quiz drops by StruggleDrop, never below StruggleFloor.
	StreakShort    int `json:"streak_short" mapstructure:"streak_short" validate:"gt=0,ltfield=StreakLong"`
	StreakLong     int `json:"streak_long" mapstructure:"streak_long" validate:"gt=0"`
	StreakQuizSize int `json:"streak_quiz_size" mapstructure:"streak_quiz_size" validate:"gt=0"`
	StreakDrop     int `json:"streak_drop" mapstructure:"streak_drop" validate:"gte=0"`
	StreakFloor    int `json:"streak_floor" mapstructure:"streak_floor" validate:"gt=0"`
	StruggleDrop   int `json:"struggle_drop" mapstructure:"struggle_drop" validate:"gte=0"`
	StruggleFloor  int `json:"struggle_floor" mapstructure:"struggle_floor" validate:"gt=0"`

	// ModerateSteps map the last quiz size to the next one, first match
	// wins. Larger quizzes grow by ModerateIncrement.
	ModerateSteps     []SizeStep `json:"moderate_steps" mapstructure:"moderate_steps" validate:"dive"`
	ModerateIncrement int        `json:"moderate_increment" mapstructure:"moderate_increment" validate:"gte=0"`

	// AdvancedIncrement is added to the last quiz size when moving up a
	// difficulty.
	AdvancedIncrement int `json:"advanced_increment" mapstructure:"advanced_increment" validate:"gte=0"`

	// Fallback pairs need at least FallbackMinAvailable unseen questions and
	// are served at no more than FallbackQuizSize.
	FallbackMinAvailable int `json:"fallback_min_available" mapstructure:"fallback_min_available" validate:"gt=0"`
	FallbackQuizSize     int `json:"fallback_quiz_size" mapstructure:"fallback_quiz_size" validate:"gt=0"`
}

// SizeStep serves Next questions after a quiz of at most UpTo questions.
type SizeStep struct {
	UpTo int `json:"up_to" mapstructure:"up_to" validate:"gt=0"`
	Next int `json:"next" mapstructure:"next" validate:"gt=0"`
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTopic:          "Python",
		FirstQuizSize:         5,
		StrugglingBelow:       0.4,
		AdvancedAtOrAbove:     0.7,
		StrugglingTopicBelow:  0.5,
		ConfidenceTopicsAbove: 2,
		ConfidenceMinHistory:  3,
		ConfidenceQuizSize:    5,
		MaxQuestions:          20,
		MasteryQuizSize:       10,
		FallbackMinAvailable:  5,
		FallbackQuizSize:      10,
		StreakShort:           2,
		StreakLong:            3,
		StreakQuizSize:        3,
		StreakDrop:            3,
		StreakFloor:           3,
		StruggleDrop:          2,
		StruggleFloor:         5,
		ModerateSteps:         []SizeStep{{UpTo: 5, Next: 10}, {UpTo: 10, Next: 15}},
		ModerateIncrement:     2,
		AdvancedIncrement:     3,
	}
}

// Validate checks that thresholds are ordered and counts positive.
func (p Policy) Validate() error {
	if err := validate.New().Struct(p); err != nil {
		return fmt.Errorf("invalid recommendation policy: %w", err)
	}
	return nil
}

// LoadPolicy decodes the "policy" section of a config over the defaults.
// Keys that are absent keep their default values. Every policy key is
// bound to the environment so ADAPTIQ_POLICY_<KEY> works without a file.
func LoadPolicy(v *viper.Viper) (Policy, error) {
	p := DefaultPolicy()
	if v != nil {
		set := viper.New()
		for _, name := range policyKeys() {
			key := "policy." + name
			if err := v.BindEnv(key); err != nil {
				return Policy{}, fmt.Errorf("bind %s: %w", key, err)
			}
			if v.IsSet(key) {
				set.Set(name, v.Get(key))
			}
		}
		if set.IsSet("moderate_steps") {
			p.ModerateSteps = nil
		}
		if err := set.Unmarshal(&p); err != nil {
			return Policy{}, fmt.Errorf("decode recommendation policy: %w", err)
		}
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// policyKeys lists the mapstructure names of Policy's fields.
func policyKeys() []string {
	t := reflect.TypeFor[Policy]()
	keys := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		if name := t.Field(i).Tag.Get("mapstructure"); name != "" {
			keys = append(keys, name)
		}
	}
	return keys
}
