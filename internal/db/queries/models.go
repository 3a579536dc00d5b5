package queries

type Category struct {
	CategoryID int32
	Type       string
}

type Question struct {
	QuestionID int32
	Question   string
	Answer     string
	CategoryID int32
	Difficulty int32
}

type InsertQuestionParams struct {
	Question   string
	Answer     string
	CategoryID int32
	Difficulty int32
}
