package model

const (
	SettingShuffleQuestions       = "shuffle_questions"
	SettingShowResultsImmediately = "show_results_immediately"
)

type SystemSetting struct {
	BaseModel
	Key   string `gorm:"size:100;unique;not null" json:"key"`
	Value string `gorm:"size:255;not null" json:"value"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}

// ExamSettings is the read-only snapshot of exam-wide toggles handed to a
// request. It is resolved once per request, never mutated downstream.
type ExamSettings struct {
	ShuffleQuestions       bool `json:"shuffleQuestions"`
	ShowResultsImmediately bool `json:"showResultsImmediately"`
}
