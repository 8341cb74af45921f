package domain

// Order statuses reported by the payment backend.
const (
	OrderPending   = "PENDING"
	OrderCompleted = "COMPLETED"
	OrderCancelled = "CANCELLED"
)

// OrderUser is the buyer embedded in an order.
type OrderUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Avatar   string `json:"avatar"`
}

// OrderCourse is a purchased course line. The admin list only fills id,
// name and price; the detail response adds the rest.
type OrderCourse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Category    *Category `json:"category,omitempty"`
}

// Order is a checkout record.
type Order struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"userId,omitempty"`
	CreatedAt  string        `json:"createdAt"`
	SessionID  string        `json:"sessionId"`
	Status     string        `json:"status"`
	CourseIDs  []string      `json:"courseIds,omitempty"`
	Courses    []OrderCourse `json:"courses"`
	User       OrderUser     `json:"user"`
	TotalPrice float64       `json:"totalPrice"`
}
