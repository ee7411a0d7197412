package chi

// Wire shapes for the JSON API. Errors use the {"error": "..."} envelope
// everywhere; rate-limit rejections add a message naming the window.

type analyzeRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

type batchAnalyzeRequest struct {
	Items []analyzeRequest `json:"items"`
}

type probabilitiesPayload struct {
	Fabricated float64 `json:"fabricated"`
	Authentic  float64 `json:"authentic"`
}

type featuresPayload struct {
	CharCount        int     `json:"char_count"`
	WordCount        int     `json:"word_count"`
	AvgWordLength    float64 `json:"avg_word_length"`
	ExclamationCount int     `json:"exclamation_count"`
	QuestionCount    int     `json:"question_count"`
	CapitalRatio     float64 `json:"capital_ratio"`
	SensationalCount int     `json:"sensational_count"`
	EmotionalCount   int     `json:"emotional_count"`
}

// AnalysisPayload is the verdict block shared by single and batch results.
// Exported so encoding/json can allocate the embedded pointer when a
// response is unmarshaled back into batchItemResponse.
type AnalysisPayload struct {
	Prediction    string               `json:"prediction"`
	Confidence    float64              `json:"confidence"`
	Label         int                  `json:"label"`
	Probabilities probabilitiesPayload `json:"probabilities"`
	Features      featuresPayload      `json:"features"`
}

type analyzeResponse struct {
	AnalysisPayload
	Timestamp  string `json:"timestamp"`
	InputType  string `json:"input_type"`
	TextLength int    `json:"text_length"`
}

// batchItemResponse is heterogeneous: items that analyzed carry the full
// verdict, failed items carry only item_id and error. The embedded pointer
// stays nil on failure so its fields drop out of the encoding.
type batchItemResponse struct {
	*AnalysisPayload
	ItemID int    `json:"item_id"`
	Error  string `json:"error,omitempty"`
}

type batchAnalyzeResponse struct {
	Results   []batchItemResponse `json:"results"`
	Total     int                 `json:"total"`
	Timestamp string              `json:"timestamp"`
}

type trainResponse struct {
	Success   bool    `json:"success"`
	Accuracy  float64 `json:"accuracy,omitempty"`
	Message   string  `json:"message,omitempty"`
	Error     string  `json:"error,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

type modelInfoResponse struct {
	IsTrained   bool   `json:"is_trained"`
	ModelType   string `json:"model_type"`
	MaxFeatures int    `json:"max_features"`
	NGramRange  [2]int `json:"ngram_range"`
	TreeCount   int    `json:"tree_count,omitempty"`
	Accuracy    string `json:"accuracy,omitempty"`
	SnapshotID  string `json:"snapshot_id,omitempty"`
	TrainedAt   string `json:"trained_at,omitempty"`
	Timestamp   string `json:"timestamp"`
}

type healthResponse struct {
	Status       string            `json:"status"`
	ModelTrained bool              `json:"model_trained"`
	Checks       map[string]string `json:"checks,omitempty"`
	Timestamp    string            `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type rateLimitResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
