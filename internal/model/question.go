package model

import "encoding/json"

type QuestionType string

const (
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	FillInBlank    QuestionType = "FILL_IN_BLANK"
)

// Question belongs to a component's bank. Options is a JSON-encoded string array,
// present only for multiple-choice questions.
// swagger:model Question
type Question struct {
	BaseModel
	ComponentID     uint         `gorm:"not null;index:idx_component_difficulty" json:"componentId"`
	QuestionText    string       `gorm:"size:2000;not null" json:"questionText"`
	Type            QuestionType `gorm:"size:20;not null" json:"type"`
	DifficultyLevel int          `gorm:"not null;index:idx_component_difficulty" json:"difficultyLevel"`
	Options         string       `gorm:"type:text" json:"-"`
	CorrectAnswer   string       `gorm:"size:2000" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) OptionList() []string {
	if q.Options == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(q.Options), &opts); err != nil {
		return nil
	}
	return opts
}

func (q *Question) SetOptions(opts []string) {
	if len(opts) == 0 {
		q.Options = ""
		return
	}
	raw, _ := json.Marshal(opts)
	q.Options = string(raw)
}
