package domain

// Lesson is a single video lesson inside a chapter.
type Lesson struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	VideoURL    string `json:"videoUrl"`
	Duration    int    `json:"duration"`
}

// Chapter is an ordered group of lessons.
type Chapter struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Position      int      `json:"position"`
	TotalLessons  int      `json:"totalLessons"`
	TotalDuration int      `json:"totalDuration"`
	Lessons       []Lesson `json:"lessons,omitempty"`
}

// CreateChapterRequest is the payload for adding a chapter to a course.
type CreateChapterRequest struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
}
