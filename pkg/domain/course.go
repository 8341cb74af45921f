package domain

// CourseLevel is the difficulty level of a course.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "BEGINNER"
	LevelIntermediate CourseLevel = "INTERMEDIATE"
	LevelAdvanced     CourseLevel = "ADVANCED"
)

// Category groups courses in the catalog.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Teaching links a teacher to a course.
type Teaching struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	Avatar   string `json:"avatar"`
}

// Feature is a selling point listed on a course page.
type Feature struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Course is a catalog entry from /courses.
type Course struct {
	ID                    int64       `json:"id"`
	Name                  string      `json:"name"`
	Price                 float64     `json:"price"`
	Description           string      `json:"description"`
	CourseLevel           CourseLevel `json:"courseLevel"`
	TotalLessons          int         `json:"totalLessons"`
	TotalChapters         int         `json:"totalChapters"`
	TotalStudents         int         `json:"totalStudents"`
	DiscountPrice         float64     `json:"discountPrice"`
	DiscountTimeRemaining string      `json:"discountTimeRemaining"`
	DiscountPercentage    float64     `json:"discountPercentage"`
	Image                 string      `json:"image,omitempty"`
	Slug                  string      `json:"slug"`
	Category              Category    `json:"category"`
	CreatedAt             string      `json:"createdAt"`
	Teachings             []Teaching  `json:"teachings"`
	AverageRating         float64     `json:"averageRating"`
	RatingCount           int         `json:"ratingCount"`
	TotalDuration         int         `json:"totalDuration"`
	Features              []Feature   `json:"features"`
}

// EffectivePrice is the price a buyer pays right now.
func (c Course) EffectivePrice() float64 {
	if c.DiscountPrice > 0 && c.DiscountPrice < c.Price {
		return c.DiscountPrice
	}
	return c.Price
}

// TeachingCourse is a course as seen by its teacher (/courses/my-courses).
// Prices arrive as decimal strings on this endpoint.
type TeachingCourse struct {
	ID                    int64      `json:"id"`
	CourseLevel           string     `json:"courseLevel"`
	Name                  string     `json:"name"`
	Price                 string     `json:"price"`
	Description           string     `json:"description"`
	TotalLessons          int        `json:"totalLessons"`
	TotalChapters         int        `json:"totalChapters"`
	TotalStudents         int        `json:"totalStudents"`
	Image                 string     `json:"image,omitempty"`
	Slug                  string     `json:"slug"`
	DiscountPrice         string     `json:"discountPrice"`
	DiscountPercentage    float64    `json:"discountPercentage"`
	DiscountTimeRemaining string     `json:"discountTimeRemaining"`
	CreatedAt             string     `json:"createdAt"`
	PriceID               string     `json:"priceId"`
	DeactivatedAt         string     `json:"deactivatedAt"`
	TotalDuration         int        `json:"totalDuration"`
	Category              Category   `json:"category"`
	Teachings             []Teaching `json:"teachings"`
	Features              []Feature  `json:"features"`
}

// AverageRating is the response of /courses/{id}/ratings/average.
type AverageRating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
