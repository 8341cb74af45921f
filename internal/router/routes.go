package router

// Route names used in code.
const (
	RouteHome           = "home"
	RouteCourses        = "courses"
	RouteCourseDetails  = "coursesdetails"
	RouteCourseLearn    = "courseslearn"
	RouteOrderChecking  = "order-checking"
	RouteQuiz           = "quiz"
	RouteRoadmap        = "roadmap"
	RouteSignup         = "signup"
	RouteLogin          = "login"
	RouteForgotPassword = "forgot-password"
	RouteResetPassword  = "reset-password"
	RouteCourseStudent  = "course-student"
	RouteSettingStudent = "setting-student"
	RouteCart           = "cart"
	RoutePayment        = "payment"
	RouteCourseTeacher  = "course-teacher"
	RouteSettingTeacher = "setting-teacher"
	RouteCreateCourse   = "create-course"
	RouteEditCourse     = "edit-course"
	RouteCreateLesson   = "create-lesson"
	RouteEditLesson     = "edit-lesson"
	RouteCreateChapter  = "create-chapter"
	RouteAdmin          = "admin"
	RouteUsersManager   = "usersmanager"
	RouteTeachersMgr    = "teachersmanager"
	RouteCoursesManager = "coursesmanager"
	RouteVerifyEmail    = "verify-email"
	RouteNotFound       = "not-found"
)

// QueryRedirect carries the originally requested path to the login screen.
const QueryRedirect = "redirect"

// Views rendered by the terminal UI. Routes without a dedicated view fall
// back to ViewPlaceholder.
const (
	ViewHome          = "home"
	ViewCourses       = "courses"
	ViewCourseDetails = "course"
	ViewQuiz          = "quiz"
	ViewLogin         = "login"
	ViewMyCourses     = "my-courses"
	ViewAdmin         = "admin"
	ViewUsers         = "users"
	ViewCoursesAdmin  = "courses-admin"
	ViewNotFound      = "not-found"
	ViewPlaceholder   = "placeholder"
)

var publicRoutes = []Route{
	{Path: "", Name: RouteHome, View: ViewHome, Meta: Meta{Title: "Home"}},
	{Path: "courses", Name: RouteCourses, View: ViewCourses, Meta: Meta{Title: "Courses"}},
	{Path: "courses/:id", Name: RouteCourseDetails, View: ViewCourseDetails, Meta: Meta{Title: "Courses"}},
	{Path: "courses/learn/:id", Name: RouteCourseLearn, View: ViewCourseDetails, Meta: Meta{Title: "Courses", RequiresAuth: true}},
	{Path: "order-checking", Name: RouteOrderChecking, View: ViewPlaceholder, Meta: Meta{Title: "Order Checking"}},
	{Path: "courses/quiz/:lessonId", Name: RouteQuiz, View: ViewQuiz, Meta: Meta{Title: "Courses"}},
	{Path: "roadmap", Name: RouteRoadmap, View: ViewPlaceholder, Meta: Meta{Title: "Roadmap"}},
	{Path: "signup", Name: RouteSignup, View: ViewPlaceholder, Meta: Meta{Title: "Sign Up", GuestOnly: true}},
	{Path: "login", Name: RouteLogin, View: ViewLogin, Meta: Meta{Title: "Login", GuestOnly: true}},
	{Path: "forgot-password", Name: RouteForgotPassword, View: ViewPlaceholder, Meta: Meta{Title: "Forgot Password", GuestOnly: true}},
	{Path: "reset-password", Name: RouteResetPassword, View: ViewPlaceholder, Meta: Meta{Title: "Reset Password", GuestOnly: true}},
}

var studentRoutes = []Route{
	{Path: "course-student", Name: RouteCourseStudent, View: ViewMyCourses, Meta: Meta{Title: "My Courses", RequiresAuth: true}},
	{Path: "setting-student", Name: RouteSettingStudent, View: ViewPlaceholder, Meta: Meta{Title: "Settings", RequiresAuth: true}},
	{Path: "cart", Name: RouteCart, View: ViewPlaceholder, Meta: Meta{Title: "Shopping Cart", RequiresAuth: true}},
	{Path: "payment", Name: RoutePayment, View: ViewPlaceholder, Meta: Meta{Title: "Payment Page", RequiresAuth: true}},
}

var teacherRoutes = []Route{
	{Path: "course-teacher", Name: RouteCourseTeacher, View: ViewMyCourses, Meta: Meta{Title: "My Courses", RequiresAuth: true}},
	{Path: "setting-teacher", Name: RouteSettingTeacher, View: ViewPlaceholder, Meta: Meta{Title: "Settings", RequiresAuth: true}},
	{Path: "course-teacher/create-course", Name: RouteCreateCourse, View: ViewPlaceholder, Meta: Meta{Title: "Create Course", RequiresAuth: true}},
	{Path: "course-teacher/edit-course/:courseId", Name: RouteEditCourse, View: ViewPlaceholder, Meta: Meta{Title: "Edit Course", RequiresAuth: true}},
	{Path: "course-teacher/courses/:courseId/:chapterId/lessons", Name: RouteCreateLesson, View: ViewPlaceholder, Meta: Meta{Title: "Create Lesson", RequiresAuth: true}},
	{Path: "course-teacher/courses/:courseId/:chapterId/:lessonId", Name: RouteEditLesson, View: ViewPlaceholder, Meta: Meta{Title: "Edit Lesson", RequiresAuth: true}},
	{Path: "course-teacher/courses/:courseId/create-chapter", Name: RouteCreateChapter, View: ViewPlaceholder, Meta: Meta{Title: "Create Chapter", RequiresAuth: true}},
}

var adminRoutes = []Route{
	{Path: "admin", Name: RouteAdmin, View: ViewAdmin, Meta: Meta{Title: "Admin Dashboard", RequiresAuth: true, RequiresAdmin: true}},
	{Path: "usersmanager", Name: RouteUsersManager, View: ViewUsers, Meta: Meta{Title: "User Management", RequiresAuth: true, RequiresAdmin: true}},
	{Path: "teachersmanager", Name: RouteTeachersMgr, View: ViewUsers, Meta: Meta{Title: "Teacher Management", RequiresAuth: true, RequiresAdmin: true}},
	{Path: "coursesmanager", Name: RouteCoursesManager, View: ViewCoursesAdmin, Meta: Meta{Title: "Course Management", RequiresAuth: true, RequiresAdmin: true}},
}

// Routes returns the QKIT route table: every screen lives under the "/"
// layout, plus email verification and the not-found catch-all.
func Routes() []Route {
	var children []Route
	for _, group := range [][]Route{publicRoutes, studentRoutes, teacherRoutes, adminRoutes} {
		children = append(children, group...)
	}
	return []Route{
		{Path: "/", View: "layout", Children: children},
		{Path: "/verify-email", Name: RouteVerifyEmail, View: ViewPlaceholder, Meta: Meta{Title: "Verify Email", GuestOnly: true}},
		{Path: "/:pathMatch(.*)*", Name: RouteNotFound, View: ViewNotFound, Meta: Meta{Title: "Page Not Found"}},
	}
}
